// Package dsl 解析 .tuck 纸盒描述文件。
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	tuckLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d*|\.\d+|\d+)(?:pt|mm|cm|in|px|dots)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(tuckLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是 .tuck 文件的根节点：
//
//	box "Card Deck" v1 {
//	  size: 2.25in 3.5in 1in
//	  face front { text: "Sample" }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     StringLiteral  `parser:"Newline* 'box' @String"`
	Version  string         `parser:"@Ident?"`
	Sections []*Section     `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Section 是顶层条目：meta、字体、面、组装说明或普通设置。
type Section struct {
	Meta         *MetaSection         `parser:"  @@"`
	Font         *FontSection         `parser:"| @@"`
	Face         *FaceSection         `parser:"| @@"`
	Instructions *InstructionsSection `parser:"| @@"`
	Setting      *Assignment          `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Font != nil:
		return "font"
	case s.Face != nil:
		return "face"
	case s.Instructions != nil:
		return "instructions"
	case s.Setting != nil:
		return "setting"
	default:
		return "unknown"
	}
}

// MetaSection 为标题、作者等文档信息，同时作为标签插值的数据。
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// FontSection 声明一个具名字体。
type FontSection struct {
	Name  string `parser:"'font' @Ident"`
	Block *Block `parser:"@@"`
}

// FaceSection 描述一个面；same-as 复制另一个面的内容。
type FaceSection struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"'face' @Ident"`
	SameAs string         `parser:"( 'same-as' @Ident"`
	Block  *Block         `parser:"| @@ )"`
}

// InstructionsSection 中每个字符串为一行说明。
type InstructionsSection struct {
	Block *Block `parser:"'instructions' @@"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block (assignment or text literal).
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment uses colon syntax (key: value ...).
type Assignment struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident"`
	Values []*Value       `parser:"':' @@+"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value 为单个取值。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text 返回取值的文本形式，字符串已去引号。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	}
	return ""
}

// Texts 返回所有取值的文本形式。
func (a *Assignment) Texts() []string {
	out := make([]string, len(a.Values))
	for i, v := range a.Values {
		out[i] = v.Text()
	}
	return out
}

// Joined 以空格连接所有取值。
func (a *Assignment) Joined() string { return strings.Join(a.Texts(), " ") }

// Assignments 返回块中的赋值，键名重复时后者覆盖前者。
func (b *Block) Assignments() map[string]*Assignment {
	out := map[string]*Assignment{}
	if b == nil {
		return out
	}
	for _, st := range b.Statements {
		if st.Assignment != nil {
			out[st.Assignment.Key] = st.Assignment
		}
	}
	return out
}

// Lines 返回块中的字符串字面量。
func (b *Block) Lines() []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, st := range b.Statements {
		if st.Text != nil {
			out = append(out, string(st.Text.Value))
		}
	}
	return out
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses .tuck content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses .tuck content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
