// Package javadoc parses documentation comments into a description and a
// list of block tags, using the tag set of javadoc 1.6.
package javadoc

// Node is a piece of a description.
type Node interface {
	node()
}

// DocComment is a parsed documentation comment.
type DocComment struct {
	Body []Node
	Tags []*Tag
}

// TagsNamed returns the block tags with the given name, in order.
func (d *DocComment) TagsNamed(name string) []*Tag {
	var tags []*Tag
	for _, t := range d.Tags {
		if t.Name == name {
			tags = append(tags, t)
		}
	}
	return tags
}

// Deprecated reports whether the comment has a @deprecated tag.
func (d *DocComment) Deprecated() bool {
	return len(d.TagsNamed("deprecated")) > 0
}

// Tag is a block tag such as @param or @return. Arg holds the parameter
// of @param, the exception of @throws and @exception, the reference of
// @see and the field name of @serialField.
type Tag struct {
	Name        string
	Arg         string
	Type        string // @serialField only
	TypeParam   bool   // @param <T>
	Description []Node
}

var blockTags = map[string]bool{
	"author":      true,
	"deprecated":  true,
	"exception":   true,
	"param":       true,
	"return":      true,
	"see":         true,
	"serial":      true,
	"serialData":  true,
	"serialField": true,
	"since":       true,
	"throws":      true,
	"version":     true,
}

// Known reports whether javadoc 1.6 defines the tag.
func (t *Tag) Known() bool {
	return blockTags[t.Name]
}

type Text struct {
	Content string
}

// Code is {@code ...}, or {@literal ...} when Literal is set.
type Code struct {
	Content string
	Literal bool
}

// Link is {@link ref label} or {@linkplain ref label}.
type Link struct {
	Reference string
	Label     []Node
	Plain     bool
}

type Value struct {
	Reference string
}

type InheritDoc struct{}

type DocRoot struct{}

// UnknownInline is an inline tag javadoc 1.6 does not define.
type UnknownInline struct {
	Name    string
	Content string
}

type StartElement struct {
	Name       string
	Attributes []Attribute
	SelfClose  bool
}

type EndElement struct {
	Name string
}

type Attribute struct {
	Name  string
	Value string
}

// Entity is an HTML character reference without its & and ;.
type Entity struct {
	Name string
}

func (Text) node()          {}
func (Code) node()          {}
func (Link) node()          {}
func (Value) node()         {}
func (InheritDoc) node()    {}
func (DocRoot) node()       {}
func (UnknownInline) node() {}
func (StartElement) node()  {}
func (EndElement) node()    {}
func (Entity) node()        {}
