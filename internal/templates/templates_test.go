package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
)

func abstractMethod(name, ret string, params ...models.Parameter) models.MethodSignature {
	return models.MethodSignature{
		Name:       name,
		ReturnType: ret,
		Parameters: params,
		Modifiers:  []string{"public", "abstract"},
	}
}

func newDescriptor(pkg, name string, methods ...models.MethodSignature) *models.TypeDescriptor {
	return &models.TypeDescriptor{
		PackageName: pkg,
		SimpleName:  name,
		Kind:        models.TypeKindInterface,
		Visibility:  models.VisibilityPublic,
		Methods:     methods,
	}
}

func TestEmit_VoidMethodsHaveEmptyBodies(t *testing.T) {
	desc := newDescriptor("com.example", "Runner",
		abstractMethod("start", "void"),
		abstractMethod("stop", "void"),
	)

	source, err := Emit(desc)
	require.NoError(t, err)

	expected := "package com.example;\n" +
		"public class RunnerImpl implements com.example.Runner {\n" +
		"\tpublic void start() {\n" +
		"\t}\n" +
		"\tpublic void stop() {\n" +
		"\t}\n" +
		"}\n"
	assert.Equal(t, expected, source)
	assert.NotContains(t, source, "return")
}

func TestEmit_DefaultValuePolicy(t *testing.T) {
	desc := newDescriptor("com.example", "Mixed",
		abstractMethod("isReady", "boolean"),
		abstractMethod("getValue", "int"),
		abstractMethod("getLong", "long"),
		abstractMethod("getChar", "char"),
		abstractMethod("getRatio", "double"),
		abstractMethod("name", "java.lang.String"),
		abstractMethod("values", "int[]"),
		abstractMethod("boxed", "java.lang.Boolean"),
	)

	source, err := Emit(desc)
	require.NoError(t, err)

	tests := []struct {
		signature string
		ret       string
	}{
		{"public boolean isReady()", "false"},
		{"public int getValue()", "0"},
		{"public long getLong()", "0"},
		{"public char getChar()", "0"},
		{"public double getRatio()", "0"},
		{"public java.lang.String name()", "null"},
		{"public int[] values()", "null"},
		{"public java.lang.Boolean boxed()", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			block := "\t" + tt.signature + " {\n\t\treturn " + tt.ret + ";\n\t}\n"
			assert.Contains(t, source, block)
		})
	}
}

func TestEmit_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		method   models.MethodSignature
		expected string
	}{
		{
			name:     "int getValue returns zero",
			method:   abstractMethod("getValue", "int"),
			expected: "\tpublic int getValue() {\n\t\treturn 0;\n\t}\n",
		},
		{
			name:     "boolean isReady returns false",
			method:   abstractMethod("isReady", "boolean"),
			expected: "\tpublic boolean isReady() {\n\t\treturn false;\n\t}\n",
		},
		{
			name:     "String name returns null",
			method:   abstractMethod("name", "java.lang.String"),
			expected: "\tpublic java.lang.String name() {\n\t\treturn null;\n\t}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := Emit(newDescriptor("demo", "Target", tt.method))
			require.NoError(t, err)
			assert.Contains(t, source, tt.expected)
		})
	}
}

func TestEmit_SignatureReconstruction(t *testing.T) {
	method := models.MethodSignature{
		Name:       "read",
		ReturnType: "int",
		Parameters: []models.Parameter{
			{Type: "byte[]", Name: "buffer"},
			{Type: "int", Name: "offset"},
			{Type: "java.util.List", Name: "sinks"},
		},
		Exceptions: []string{"java.io.IOException", "java.util.concurrent.TimeoutException"},
		Modifiers:  []string{"public", "abstract", "transient"},
	}

	source, err := Emit(newDescriptor("io.demo", "Reader", method))
	require.NoError(t, err)

	assert.Contains(t, source,
		"\tpublic int read(byte[] buffer, int offset, java.util.List sinks) throws java.io.IOException, java.util.concurrent.TimeoutException {\n")
	assert.NotContains(t, source, "abstract")
	assert.NotContains(t, source, "transient")
}

func TestEmit_KeepsStaticAndStrictfp(t *testing.T) {
	method := models.MethodSignature{
		Name:       "of",
		ReturnType: "io.demo.Shape",
		Modifiers:  []string{"public", "static", "strictfp"},
	}

	source, err := Emit(newDescriptor("io.demo", "Shape", method))
	require.NoError(t, err)
	assert.Contains(t, source, "\tpublic static strictfp io.demo.Shape of() {\n\t\treturn null;\n\t}\n")
}

func TestEmit_NoModifiers(t *testing.T) {
	method := models.MethodSignature{Name: "size", ReturnType: "int"}

	source, err := Emit(newDescriptor("", "Sized", method))
	require.NoError(t, err)
	assert.Contains(t, source, "\tint size() {\n")
}

func TestEmit_UnnamedPackage(t *testing.T) {
	source, err := Emit(newDescriptor("", "Plain", abstractMethod("run", "void")))
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(source, "package"), "package clause must be omitted")
	assert.True(t, strings.HasPrefix(source, "public class PlainImpl implements Plain {\n"))
}

func TestEmit_MemberInterfaceUsesCanonicalName(t *testing.T) {
	desc := newDescriptor("com.example", "Listener", abstractMethod("onEvent", "void"))
	desc.Enclosing = []string{"Bus"}

	source, err := Emit(desc)
	require.NoError(t, err)
	assert.Contains(t, source, "public class ListenerImpl implements com.example.Bus.Listener {\n")
}

func TestEmit_PreservesDescriptorOrder(t *testing.T) {
	desc := newDescriptor("p", "Ordered",
		abstractMethod("zeta", "void"),
		abstractMethod("alpha", "void"),
		abstractMethod("zeta", "void"),
	)

	source, err := Emit(desc)
	require.NoError(t, err)

	zeta := strings.Index(source, "zeta")
	alpha := strings.Index(source, "alpha")
	assert.Less(t, zeta, alpha)
	assert.Equal(t, 2, strings.Count(source, "void zeta()"), "the emitter does not deduplicate")
}

func TestEmit_Idempotent(t *testing.T) {
	desc := newDescriptor("com.example", "Stable",
		abstractMethod("a", "int"),
		abstractMethod("b", "java.lang.Object", models.Parameter{Type: "long", Name: "x"}),
	)

	first, err := Emit(desc)
	require.NoError(t, err)
	second, err := Emit(desc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmit_EscapesNonASCII(t *testing.T) {
	desc := newDescriptor("com.пример", "Сервис",
		abstractMethod("получить", "java.lang.String", models.Parameter{Type: "int", Name: "ключ"}),
	)

	source, err := Emit(desc)
	require.NoError(t, err)

	assert.True(t, IsASCII(source), "generated text must be ASCII only")
	assert.Contains(t, source, `\u0421\u0435\u0440\u0432\u0438\u0441Impl`)

	decoded := Unescape(source)
	assert.Contains(t, decoded, "package com.пример;")
	assert.Contains(t, decoded, "public class СервисImpl implements com.пример.Сервис {")
	assert.Contains(t, decoded, "public java.lang.String получить(int ключ)")
}

func TestEmit_InvalidTarget(t *testing.T) {
	tests := []struct {
		name string
		desc *models.TypeDescriptor
	}{
		{
			name: "class",
			desc: &models.TypeDescriptor{PackageName: "p", SimpleName: "Concrete", Kind: models.TypeKindClass},
		},
		{
			name: "private interface",
			desc: &models.TypeDescriptor{PackageName: "p", SimpleName: "Hidden", Kind: models.TypeKindInterface, Visibility: models.VisibilityPrivate},
		},
		{
			name: "nil descriptor",
			desc: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := Emit(tt.desc)
			require.Error(t, err)
			assert.Empty(t, source)
			assert.True(t, errors.IsCode(err, errors.InvalidTargetCode), "expected InvalidTarget, got %v", err)
		})
	}
}

func TestGenerate_RelativePath(t *testing.T) {
	emitter := NewEmitter()

	artifact, err := emitter.Generate(newDescriptor("com.example.api", "Store", abstractMethod("close", "void")))
	require.NoError(t, err)
	assert.Equal(t, "com/example/api/StoreImpl.java", artifact.RelativePath)

	artifact, err = emitter.Generate(newDescriptor("", "Store", abstractMethod("close", "void")))
	require.NoError(t, err)
	assert.Equal(t, "StoreImpl.java", artifact.RelativePath)
}
