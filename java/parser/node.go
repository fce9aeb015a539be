package parser

import "strings"

type NodeKind int

// Child layouts. Optional children are omitted rather than nil; "name" means
// the node's Token holds the declared identifier.
const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit // [PackageDecl?, ImportDecl*, type declarations*]
	KindPackageDecl     // [Modifiers (annotations), qualified name]
	KindImportDecl      // [qualified name]; Flags has FlagStatic for static imports

	// Type declarations: name; [Modifiers, TypeParameters?, ExtendsClause?, ImplementsClause?, ClassBody]
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindAnnotationDecl

	// Members
	KindClassBody       // [members*]; enum bodies start with EnumConstant*
	KindFieldDecl       // [Modifiers, type, VariableDeclarator+]
	KindMethodDecl      // name; [Modifiers, TypeParameters?, result type, Parameters, ThrowsClause?, Block|DefaultValue?]
	KindConstructorDecl // name; [Modifiers, TypeParameters?, Parameters, ThrowsClause?, Block]
	KindInitializer     // [Block]; Flags has FlagStatic for static initializers
	KindEnumConstant    // name; [Modifiers, Arguments?, ClassBody?]
	KindDefaultValue    // [annotation element value]
	KindEmptyDecl       // a stray ';' between type declarations

	// Type and modifiers
	KindModifiers          // [Annotation*]; Flags holds the modifier bits
	KindAnnotation         // [annotation type, element values*]
	KindTypeParameters     // [TypeParameter+]
	KindTypeParameter      // name; [bounds*]
	KindTypeArguments      // [types+]
	KindExtendsClause      // [types+]
	KindImplementsClause   // [types+]
	KindThrowsClause       // [types+]
	KindParameters         // [Parameter*]
	KindParameter          // name; [Modifiers, type]; Flags has FlagVarargs
	KindVariableDeclarator // name; [initializer?]; Dims counts brackets after the name

	// Types
	KindPrimitiveType     // Token is the keyword, including void
	KindArrayType         // [element type]
	KindParameterizedType // [base type, type arguments+]
	KindWildcard          // [bound?]; Op is TokenExtends, TokenSuper or TokenQuestion

	// Statements
	KindBlock            // [statements*]
	KindLocalVarDecl     // [Modifiers, type, VariableDeclarator+]
	KindExprStmt         // [expression]
	KindEmptyStmt        //
	KindIfStmt           // [condition, then, else?]
	KindForStmt          // [ForInit, condition?, ForUpdate, body]
	KindForInit          // [LocalVarDecl | ExprStmt*]
	KindForUpdate        // [ExprStmt*]
	KindEnhancedForStmt  // [LocalVarDecl, expression, body]
	KindWhileStmt        // [condition, body]
	KindDoStmt           // [body, condition]
	KindTryStmt          // [Block, CatchClause*, FinallyClause?]
	KindCatchClause      // [Parameter, Block]
	KindFinallyClause    // [Block]
	KindSwitchStmt       // [selector, SwitchCase*]
	KindSwitchCase       // Token is case or default; [label?, statements*]
	KindSynchronizedStmt // [lock, Block]
	KindReturnStmt       // [expression?]
	KindThrowStmt        // [expression]
	KindBreakStmt        // label in Token, if any
	KindContinueStmt     // label in Token, if any
	KindAssertStmt       // [condition, detail?]
	KindLabeledStmt      // name; [statement]

	// Expressions
	KindAssignExpr         // [target, value]
	KindCompoundAssignExpr // Op; [target, value]
	KindTernaryExpr        // [condition, then, else]
	KindBinaryExpr         // Op; [left, right]
	KindInstanceofExpr     // [expression, type]
	KindUnaryExpr          // Op; [operand]
	KindPostfixExpr        // Op; [operand]
	KindCastExpr           // [type, expression]
	KindCallExpr           // [TypeArguments?, method, Arguments]
	KindArguments          // [expressions*]
	KindFieldAccess        // [target, Identifier|This|Super]
	KindArrayAccess        // [array, index]
	KindNewExpr            // [outer?, TypeArguments?, class type, Arguments, ClassBody?]
	KindNewArrayExpr       // [element type, dimensions*, ArrayInit?]
	KindArrayInit          // [elements*]
	KindParenExpr          // [expression]
	KindLiteral            // Token; Value holds the decoded value
	KindIdentifier         // name
	KindThis
	KindSuper
	KindClassLiteral // [type]
)

var nodeKindNames = map[NodeKind]string{
	KindError:              "Error",
	KindCompilationUnit:    "CompilationUnit",
	KindPackageDecl:        "PackageDecl",
	KindImportDecl:         "ImportDecl",
	KindClassDecl:          "ClassDecl",
	KindInterfaceDecl:      "InterfaceDecl",
	KindEnumDecl:           "EnumDecl",
	KindAnnotationDecl:     "AnnotationDecl",
	KindClassBody:          "ClassBody",
	KindFieldDecl:          "FieldDecl",
	KindMethodDecl:         "MethodDecl",
	KindConstructorDecl:    "ConstructorDecl",
	KindInitializer:        "Initializer",
	KindEnumConstant:       "EnumConstant",
	KindDefaultValue:       "DefaultValue",
	KindEmptyDecl:          "EmptyDecl",
	KindModifiers:          "Modifiers",
	KindAnnotation:         "Annotation",
	KindTypeParameters:     "TypeParameters",
	KindTypeParameter:      "TypeParameter",
	KindTypeArguments:      "TypeArguments",
	KindExtendsClause:      "ExtendsClause",
	KindImplementsClause:   "ImplementsClause",
	KindThrowsClause:       "ThrowsClause",
	KindParameters:         "Parameters",
	KindParameter:          "Parameter",
	KindVariableDeclarator: "VariableDeclarator",
	KindPrimitiveType:      "PrimitiveType",
	KindArrayType:          "ArrayType",
	KindParameterizedType:  "ParameterizedType",
	KindWildcard:           "Wildcard",
	KindBlock:              "Block",
	KindLocalVarDecl:       "LocalVarDecl",
	KindExprStmt:           "ExprStmt",
	KindEmptyStmt:          "EmptyStmt",
	KindIfStmt:             "IfStmt",
	KindForStmt:            "ForStmt",
	KindForInit:            "ForInit",
	KindForUpdate:          "ForUpdate",
	KindEnhancedForStmt:    "EnhancedForStmt",
	KindWhileStmt:          "WhileStmt",
	KindDoStmt:             "DoStmt",
	KindTryStmt:            "TryStmt",
	KindCatchClause:        "CatchClause",
	KindFinallyClause:      "FinallyClause",
	KindSwitchStmt:         "SwitchStmt",
	KindSwitchCase:         "SwitchCase",
	KindSynchronizedStmt:   "SynchronizedStmt",
	KindReturnStmt:         "ReturnStmt",
	KindThrowStmt:          "ThrowStmt",
	KindBreakStmt:          "BreakStmt",
	KindContinueStmt:       "ContinueStmt",
	KindAssertStmt:         "AssertStmt",
	KindLabeledStmt:        "LabeledStmt",
	KindAssignExpr:         "AssignExpr",
	KindCompoundAssignExpr: "CompoundAssignExpr",
	KindTernaryExpr:        "TernaryExpr",
	KindBinaryExpr:         "BinaryExpr",
	KindInstanceofExpr:     "InstanceofExpr",
	KindUnaryExpr:          "UnaryExpr",
	KindPostfixExpr:        "PostfixExpr",
	KindCastExpr:           "CastExpr",
	KindCallExpr:           "CallExpr",
	KindArguments:          "Arguments",
	KindFieldAccess:        "FieldAccess",
	KindArrayAccess:        "ArrayAccess",
	KindNewExpr:            "NewExpr",
	KindNewArrayExpr:       "NewArrayExpr",
	KindArrayInit:          "ArrayInit",
	KindParenExpr:          "ParenExpr",
	KindLiteral:            "Literal",
	KindIdentifier:         "Identifier",
	KindThis:               "This",
	KindSuper:              "Super",
	KindClassLiteral:       "ClassLiteral",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsType reports whether nodes of kind k denote a type. Identifiers and
// field accesses may also name types.
func (k NodeKind) IsType() bool {
	switch k {
	case KindPrimitiveType, KindArrayType, KindParameterizedType, KindWildcard:
		return true
	}
	return false
}

// NodeID identifies a node within one parse. IDs are assigned in creation
// order starting at 1.
type NodeID int

type Error struct {
	Key      string
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	ID       NodeID
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Op       TokenKind
	Flags    Modifier
	Dims     int
	Value    string
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Child returns the i'th child, or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Last returns the last child, or nil.
func (n *Node) Last() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) Pos() Position {
	return n.Span.Start
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the identifier a named node declares or references.
func (n *Node) Name() string {
	return n.TokenLiteral()
}

// Walk calls fn for n and every descendant in depth-first order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Errors returns every erroneous node in the tree.
func (n *Node) Errors() []*Node {
	var errs []*Node
	n.Walk(func(c *Node) bool {
		if c.IsError() {
			errs = append(errs, c)
		}
		return true
	})
	return errs
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Op != TokenEOF {
		sb.WriteString(" " + n.Op.String())
	}
	if n.Flags != 0 {
		sb.WriteString(" " + n.Flags.String())
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	for i := 0; i < n.Dims; i++ {
		sb.WriteString("[]")
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}

// Equal reports whether two trees have the same structure, ignoring IDs,
// positions and the source spelling of literals.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Op != b.Op || a.Flags != b.Flags || a.Dims != b.Dims ||
		len(a.Children) != len(b.Children) {
		return false
	}
	if a.Kind == KindLiteral {
		if a.Value != b.Value || a.Token.Kind != b.Token.Kind {
			return false
		}
	} else if a.TokenLiteral() != b.TokenLiteral() {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
