package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// javaLexer tokenizes Java source after unicode escape translation. Operators
// are single characters so nested generics close with separate '>' tokens.
var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "TextBlock", Pattern: `"""(?s:.*?)"""`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\\n])+'`},
	{Name: "AtInterface", Pattern: `@\s*interface\b`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "NonSealed", Pattern: `non-sealed\b`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*|\.[0-9][0-9a-zA-Z_]*`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Punct", Pattern: `[{}()\[\];,.<>?&=@*+\-!~|^%/:]`},
})

var javaParser = participle.MustBuild[compilationUnit](
	participle.Lexer(javaLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(participle.MaxLookahead),
)

type compilationUnit struct {
	Pos lexer.Position

	Package *packageDecl  `parser:"@@?"`
	Imports []*importDecl `parser:"@@*"`
	Types   []*typeDecl   `parser:"( @@ | ';' )*"`
}

type packageDecl struct {
	Annotations []*annotation `parser:"@@*"`
	Name        []string      `parser:"'package' @Ident ( '.' @Ident )* ';'"`
}

type importDecl struct {
	Static   bool     `parser:"'import' @'static'?"`
	Path     []string `parser:"@Ident ( '.' @Ident )*"`
	Wildcard bool     `parser:"@( '.' '*' )? ';'"`
}

type typeDecl struct {
	Pos lexer.Position

	Modifiers []*modifier `parser:"@@*"`
	Body      *typeBody   `parser:"@@"`
}

type typeBody struct {
	Interface *interfaceDecl `parser:"  @@"`
	Other     *otherDecl     `parser:"| @@"`
}

type modifier struct {
	Annotation *annotation `parser:"  @@"`
	Keyword    string      `parser:"| @( 'public' | 'protected' | 'private' | 'static' | 'abstract' | 'final' | 'strictfp' | 'default' | 'sealed' | NonSealed | 'transient' | 'volatile' | 'synchronized' | 'native' )"`
}

type annotation struct {
	Name []string `parser:"'@' @Ident ( '.' @Ident )*"`
	Args *parens  `parser:"@@?"`
}

// parens skips a balanced parenthesized token run
type parens struct {
	Items []*parenItem `parser:"'(' @@* ')'"`
}

type parenItem struct {
	Nested *parens `parser:"  @@"`
	Token  string  `parser:"| @~( '(' | ')' )"`
}

// block skips a balanced brace-delimited token run
type block struct {
	Items []*blockItem `parser:"'{' @@* '}'"`
}

type blockItem struct {
	Nested *block `parser:"  @@"`
	Token  string `parser:"| @~( '{' | '}' )"`
}

type interfaceDecl struct {
	Pos lexer.Position

	Name       string      `parser:"'interface' @Ident"`
	TypeParams *typeParams `parser:"@@?"`
	Extends    []*typeRef  `parser:"( 'extends' @@ ( ',' @@ )* )?"`
	Permits    []*typeRef  `parser:"( 'permits' @@ ( ',' @@ )* )?"`
	Members    []*member   `parser:"'{' @@* '}'"`
}

// otherDecl is a class, enum, record or annotation type. Only its name, kind
// and member types matter, the rest is skipped.
type otherDecl struct {
	Pos lexer.Position

	Keyword string     `parser:"@( 'class' | 'enum' | 'record' | AtInterface )"`
	Name    string     `parser:"@Ident"`
	Header  []string   `parser:"( @~'{' )*"`
	Body    *classBody `parser:"@@"`
}

// classBody keeps member type declarations and skips everything else as
// balanced tokens.
type classBody struct {
	Items []*classItem `parser:"'{' @@* '}'"`
}

type classItem struct {
	Type   *typeDecl `parser:"  @@"`
	Nested *block    `parser:"| @@"`
	Token  string    `parser:"| @~( '{' | '}' )"`
}

type member struct {
	Pos lexer.Position

	Modifiers []*modifier `parser:"@@*"`
	Type      *typeBody   `parser:"( @@"`
	Signature *signature  `parser:"| @@"`
	Empty     bool        `parser:"| @';' )"`
}

type signature struct {
	TypeParams *typeParams `parser:"@@?"`
	Void       bool        `parser:"( @'void'"`
	Return     *typeRef    `parser:"| @@ )"`
	Name       string      `parser:"@Ident"`
	Method     *methodRest `parser:"( @@"`
	Field      *fieldRest  `parser:"| @@ )"`
}

type methodRest struct {
	Params []*param   `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Dims   []string   `parser:"( @'[' ']' )*"`
	Throws []*typeRef `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body   *block     `parser:"( @@"`
	Semi   bool       `parser:"| @';' )"`
}

// fieldRest skips a constant initializer up to its terminating semicolon
type fieldRest struct {
	Items []*fieldItem `parser:"'=' @@* ';'"`
}

type fieldItem struct {
	Nested *block `parser:"  @@"`
	Token  string `parser:"| @~( ';' | '{' | '}' )"`
}

type param struct {
	Modifiers []*modifier `parser:"@@*"`
	Type      *typeRef    `parser:"@@"`
	Varargs   bool        `parser:"@'...'?"`
	Name      string      `parser:"@Ident"`
	Dims      []string    `parser:"( @'[' ']' )*"`
}

type typeRef struct {
	Pos lexer.Position

	Annotations []*annotation  `parser:"@@*"`
	Segments    []*typeSegment `parser:"@@ ( '.' @@ )*"`
	Dims        []string       `parser:"( @'[' ']' )*"`
}

type typeSegment struct {
	Annotations []*annotation `parser:"@@*"`
	Name        string        `parser:"@Ident"`
	Args        *typeArgs     `parser:"@@?"`
}

type typeArgs struct {
	Args []*typeArg `parser:"'<' ( @@ ( ',' @@ )* )? '>'"`
}

type typeArg struct {
	Wildcard *wildcard `parser:"  @@"`
	Type     *typeRef  `parser:"| @@"`
}

type wildcard struct {
	Annotations []*annotation `parser:"@@* '?'"`
	Bound       string        `parser:"( @( 'extends' | 'super' )"`
	Type        *typeRef      `parser:"  @@ )?"`
}

type typeParams struct {
	Params []*typeParam `parser:"'<' @@ ( ',' @@ )* '>'"`
}

type typeParam struct {
	Annotations []*annotation `parser:"@@*"`
	Name        string        `parser:"@Ident"`
	Bounds      []*typeRef    `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

// name returns the dotted type name as written, without type arguments
func (t *typeRef) name() string {
	n := ""
	for i, seg := range t.Segments {
		if i > 0 {
			n += "."
		}
		n += seg.Name
	}
	return n
}

// keywords returns the keyword modifiers in declaration order
func keywords(mods []*modifier) []string {
	var result []string
	for _, m := range mods {
		if m.Keyword != "" {
			result = append(result, m.Keyword)
		}
	}
	return result
}

func hasKeyword(mods []*modifier, keyword string) bool {
	for _, m := range mods {
		if m.Keyword == keyword {
			return true
		}
	}
	return false
}
