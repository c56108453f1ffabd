package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/generator"
	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/utils"
)

const baseSource = `package com.example.api;

public interface Base {
    void close();
    long size();
    static Base empty() { return null; }
}
`

const hiddenSource = `package com.example.api;

interface Hidden {
    int x();
}

class Helper {}
`

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func apiSourcepath(t *testing.T) string {
	return writeSources(t, map[string]string{
		"com/example/api/Repo.java":  repoSource,
		"com/example/api/Base.java":  baseSource,
		"com/example/api/Types.java": hiddenSource,
	})
}

func method(name, ret string, mods []string, params ...models.Parameter) models.MethodSignature {
	return models.MethodSignature{Name: name, ReturnType: ret, Parameters: params, Modifiers: mods}
}

var (
	abstractMods = []string{"public", "abstract"}
	defaultMods  = []string{"public"}
	staticMods   = []string{"public", "static"}
)

func TestResolver_Resolve(t *testing.T) {
	root := apiSourcepath(t)
	r := NewResolver([]string{root})

	desc, err := r.Resolve("com.example.api.Repo")
	require.NoError(t, err)

	assert.Equal(t, "com.example.api", desc.PackageName)
	assert.Equal(t, "Repo", desc.SimpleName)
	assert.Empty(t, desc.Enclosing)
	assert.Equal(t, models.TypeKindInterface, desc.Kind)
	assert.Equal(t, models.VisibilityPublic, desc.Visibility)
	assert.Equal(t, root, desc.Origin)

	findAll := method("findAll", "java.util.List", abstractMods,
		models.Parameter{Type: "java.util.Map", Name: "filter"},
		models.Parameter{Type: "java.lang.String[]", Name: "tags"})
	findAll.Exceptions = []string{"java.io.IOException", "java.sql.SQLException"}

	want := []models.MethodSignature{
		findAll,
		method("first", "java.lang.Comparable", abstractMods),
		method("isEmpty", "boolean", defaultMods),
		method("create", "com.example.api.Repo", staticMods),
		method("map", "java.lang.Object", abstractMods, models.Parameter{Type: "java.util.function.Function", Name: "fn"}),
		method("counts", "int[][]", abstractMods),
		method("old", "void", abstractMods, models.Parameter{Type: "java.lang.String", Name: "s"}),
		method("parent", "com.example.api.Base", abstractMods),
		method("inner", "com.example.api.Repo.Inner", abstractMods),
		method("close", "void", abstractMods),
		method("size", "long", abstractMods),
	}
	assert.Equal(t, want, desc.Methods)
}

func TestResolver_MemberInterface(t *testing.T) {
	r := NewResolver([]string{apiSourcepath(t)})

	for _, name := range []string{"com.example.api.Repo.Inner", "com.example.api.Repo$Inner"} {
		t.Run(name, func(t *testing.T) {
			desc, err := r.Resolve(name)
			require.NoError(t, err)

			assert.Equal(t, "Inner", desc.SimpleName)
			assert.Equal(t, []string{"Repo"}, desc.Enclosing)
			assert.Equal(t, "com.example.api.Repo.Inner", desc.QualifiedName())
			assert.Equal(t, models.VisibilityPublic, desc.Visibility)
			assert.Equal(t, []models.MethodSignature{method("run", "void", abstractMods)}, desc.Methods)
		})
	}
}

func TestResolver_NonInterfaceTypes(t *testing.T) {
	r := NewResolver([]string{apiSourcepath(t)})

	holder, err := r.Resolve("com.example.api.Repo.Holder")
	require.NoError(t, err)
	assert.Equal(t, models.TypeKindClass, holder.Kind)
	assert.Empty(t, holder.Methods)
	assert.True(t, errors.IsCode(holder.Validate(), errors.InvalidTargetCode))

	mode, err := r.Resolve("com.example.api.Repo.Mode")
	require.NoError(t, err)
	assert.Equal(t, models.TypeKindEnum, mode.Kind)
}

func TestResolver_PackagePrivateTypeInOtherFile(t *testing.T) {
	r := NewResolver([]string{apiSourcepath(t)})

	desc, err := r.Resolve("com.example.api.Hidden")
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPackage, desc.Visibility)
	assert.Equal(t, []models.MethodSignature{method("x", "int", abstractMods)}, desc.Methods)

	helper, err := r.Resolve("com.example.api.Helper")
	require.NoError(t, err)
	assert.Equal(t, models.TypeKindClass, helper.Kind)
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolver([]string{apiSourcepath(t)})

	tests := []string{"com.example.api.Missing", "com.example.api.Repo.Missing", "Missing", "com..Broken", "1com.Bad"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := r.Resolve(name)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ResolutionFailureCode))
		})
	}
}

func TestResolver_SyntaxErrorInRequestedType(t *testing.T) {
	root := writeSources(t, map[string]string{
		"bad/Broken.java": "package bad;\npublic interface Broken { void run( }\n",
	})

	_, err := NewResolver([]string{root}).Resolve("bad.Broken")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.SyntaxFailureCode))
	assert.Contains(t, err.Error(), "Broken.java")
}

func TestResolver_SearchesRootsInOrder(t *testing.T) {
	first := writeSources(t, map[string]string{
		"p/Api.java": "package p; public interface Api { int first(); }",
	})
	second := writeSources(t, map[string]string{
		"p/Api.java":   "package p; public interface Api { int second(); }",
		"p/Other.java": "package p; public interface Other extends Api { }",
	})

	r := NewResolver([]string{first, second})

	desc, err := r.Resolve("p.Api")
	require.NoError(t, err)
	assert.Equal(t, "first", desc.Methods[0].Name)
	assert.Equal(t, first, desc.Origin)

	other, err := r.Resolve("p.Other")
	require.NoError(t, err)
	assert.Equal(t, second, other.Origin)
	assert.Equal(t, "first", other.Methods[0].Name, "superinterfaces resolve through the whole source path")
}

func TestResolver_InheritanceOrderAndOverrides(t *testing.T) {
	root := writeSources(t, map[string]string{
		"shapes/Shape.java":  "package shapes; public interface Shape { double area(); String name(); default String describe() { return name(); } }",
		"shapes/Named.java":  "package shapes; public interface Named { String name(); static Named of(String n) { return null; } }",
		"shapes/Circle.java": "package shapes; public interface Circle extends Shape, Named { double radius(); double area(); }",
	})

	desc, err := NewResolver([]string{root}).Resolve("shapes.Circle")
	require.NoError(t, err)

	want := []models.MethodSignature{
		method("radius", "double", abstractMods),
		method("area", "double", abstractMods),
		method("name", "java.lang.String", abstractMods),
		method("describe", "java.lang.String", defaultMods),
	}
	assert.Equal(t, want, desc.Methods)
}

func TestResolver_PlatformSuperinterfaces(t *testing.T) {
	root := writeSources(t, map[string]string{
		"io/Resource.java": `package io;
import java.util.function.Supplier;
public interface Resource extends AutoCloseable, Supplier<String>, java.io.Serializable, Unknown {
    String id();
}`,
	})

	var warnings bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticWarn)
	diagnostics.SetColors(false)
	diagnostics.SetOutput(&warnings, &warnings)

	desc, err := NewResolver([]string{root}, WithDiagnostics(diagnostics)).Resolve("io.Resource")
	require.NoError(t, err)

	closeMethod := method("close", "void", abstractMods)
	closeMethod.Exceptions = []string{"java.lang.Exception"}
	want := []models.MethodSignature{
		method("id", "java.lang.String", abstractMods),
		closeMethod,
		method("get", "java.lang.Object", abstractMods),
	}
	assert.Equal(t, want, desc.Methods)
	assert.Contains(t, warnings.String(), "Unknown")
}

func TestResolver_TypeVariables(t *testing.T) {
	root := writeSources(t, map[string]string{
		"gen/Box.java": `package gen;
import java.util.List;
public interface Box<T, N extends Number, C extends N> {
    T get();
    N number();
    C chained();
    <T extends CharSequence> T shadow(T value);
    List<T>[] lists(T... values);
}`,
	})

	desc, err := NewResolver([]string{root}).Resolve("gen.Box")
	require.NoError(t, err)

	want := []models.MethodSignature{
		method("get", "java.lang.Object", abstractMods),
		method("number", "java.lang.Number", abstractMods),
		method("chained", "java.lang.Number", abstractMods),
		method("shadow", "java.lang.CharSequence", abstractMods, models.Parameter{Type: "java.lang.CharSequence", Name: "value"}),
		method("lists", "java.util.List[]", abstractMods, models.Parameter{Type: "java.lang.Object[]", Name: "values"}),
	}
	assert.Equal(t, want, desc.Methods)
}

func TestResolver_SamePackageAndOnDemandImports(t *testing.T) {
	root := writeSources(t, map[string]string{
		"app/Service.java": `package app;
import model.*;
import app.Outer.*;
public interface Service {
    User find(Id id);
    Config config();
    Nested nested();
    Unknown unknown();
}`,
		"app/Config.java": "package app; public class Config {}",
		"app/Outer.java":  "package app; public interface Outer { interface Nested {} }",
		"model/User.java": "package model; public class User {}",
		"model/Id.java":   "package model; public record Id(long value) {}",
	})

	desc, err := NewResolver([]string{root}).Resolve("app.Service")
	require.NoError(t, err)

	want := []models.MethodSignature{
		method("find", "model.User", abstractMods, models.Parameter{Type: "model.Id", Name: "id"}),
		method("config", "app.Config", abstractMods),
		method("nested", "app.Outer.Nested", abstractMods),
		method("unknown", "Unknown", abstractMods),
	}
	assert.Equal(t, want, desc.Methods)
}

func TestResolver_UnnamedPackage(t *testing.T) {
	root := writeSources(t, map[string]string{
		"Plain.java": "public interface Plain { Plain self(); }",
	})

	desc, err := NewResolver([]string{root}).Resolve("Plain")
	require.NoError(t, err)
	assert.Equal(t, "", desc.PackageName)
	assert.Equal(t, []models.MethodSignature{method("self", "Plain", abstractMods)}, desc.Methods)
}

func TestResolver_ReparsesChangedFiles(t *testing.T) {
	root := writeSources(t, map[string]string{
		"p/Api.java": "package p; public interface Api { int one(); }",
	})
	r := NewResolver([]string{root})

	desc, err := r.Resolve("p.Api")
	require.NoError(t, err)
	require.Len(t, desc.Methods, 1)

	path := filepath.Join(root, "p", "Api.java")
	require.NoError(t, os.WriteFile(path, []byte("package p; public interface Api { int one(); int two(); }"), 0o644))

	desc, err = r.Resolve("p.Api")
	require.NoError(t, err)
	assert.Len(t, desc.Methods, 2)
}

func TestParseSource(t *testing.T) {
	src := `package demo;
interface Base { void base(); }
public interface Api extends Base { String name(); }
`
	desc, err := ParseSource("Api.java", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "demo.Api", desc.QualifiedName())
	assert.Equal(t, "", desc.Origin)
	assert.Equal(t, []models.MethodSignature{
		method("name", "java.lang.String", abstractMods),
		method("base", "void", abstractMods),
	}, desc.Methods)
}

func TestParseSource_Errors(t *testing.T) {
	_, err := ParseSource("Empty.java", []byte("package demo;\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ResolutionFailureCode))

	_, err = ParseSource("Bad.java", []byte("public interface {"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.SyntaxFailureCode))
}

const outerSource = `package p;

import java.util.List;

public class Outer {
    public static final Class<?> SELF = Outer.class;
    private final int record = 0;

    static {
        System.out.println("{");
    }

    @Deprecated
    public interface Callback {
        void fire(int code);
        Listener listener();
    }

    private interface Hidden {
        int x();
    }

    interface Listener {
        void on(List<String> events);
    }

    public enum Mode {
        ON { public String toString() { return "on"; } };

        public interface Switch { boolean flip(Mode mode); }
    }

    public void run() {
        interface Local { void skipped(); }
    }
}
`

func TestResolver_MemberOfClass(t *testing.T) {
	root := writeSources(t, map[string]string{"p/Outer.java": outerSource})
	r := NewResolver([]string{root})

	for _, name := range []string{"p.Outer.Callback", "p.Outer$Callback"} {
		desc, err := r.Resolve(name)
		require.NoError(t, err, name)

		assert.Equal(t, "p.Outer.Callback", desc.QualifiedName())
		assert.Equal(t, []string{"Outer"}, desc.Enclosing)
		assert.Equal(t, models.VisibilityPublic, desc.Visibility)
		assert.Equal(t, []models.MethodSignature{
			method("fire", "void", abstractMods, models.Parameter{Type: "int", Name: "code"}),
			method("listener", "p.Outer.Listener", abstractMods),
		}, desc.Methods)
		assert.NoError(t, desc.Validate())
	}

	listener, err := r.Resolve("p.Outer.Listener")
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPackage, listener.Visibility)
	assert.Equal(t, []models.MethodSignature{
		method("on", "void", abstractMods, models.Parameter{Type: "java.util.List", Name: "events"}),
	}, listener.Methods)

	flip, err := r.Resolve("p.Outer$Mode$Switch")
	require.NoError(t, err)
	assert.Equal(t, []string{"Outer", "Mode"}, flip.Enclosing)
	assert.Equal(t, []models.MethodSignature{
		method("flip", "boolean", abstractMods, models.Parameter{Type: "p.Outer.Mode", Name: "mode"}),
	}, flip.Methods)

	_, err = r.Resolve("p.Outer.Local")
	assert.True(t, errors.IsCode(err, errors.ResolutionFailureCode))
}

func TestResolver_PrivateMemberIsNotImplemented(t *testing.T) {
	root := writeSources(t, map[string]string{"p/Outer.java": outerSource})

	desc, err := NewResolver([]string{root}).Resolve("p.Outer.Hidden")
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, desc.Visibility)

	out := t.TempDir()
	err = generator.NewImplementor(generator.Options{}).Implement(desc, out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.InvalidTargetCode))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
