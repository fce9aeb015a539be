package parser

import "strings"

// Modifier is a set of declaration flags.
type Modifier uint32

const (
	FlagPublic Modifier = 1 << iota
	FlagPrivate
	FlagProtected
	FlagStatic
	FlagFinal
	FlagSynchronized
	FlagVolatile
	FlagTransient
	FlagNative
	FlagAbstract
	FlagStrictfp

	// Flags below have no keyword of their own.
	FlagDeprecated
	FlagAnnotation
	FlagVarargs
)

// standardFlags covers the flags spelled with a modifier keyword.
const standardFlags = FlagDeprecated - 1

var modifierOrder = []struct {
	flag Modifier
	name string
}{
	{FlagPublic, "public"},
	{FlagProtected, "protected"},
	{FlagPrivate, "private"},
	{FlagAbstract, "abstract"},
	{FlagStatic, "static"},
	{FlagFinal, "final"},
	{FlagTransient, "transient"},
	{FlagVolatile, "volatile"},
	{FlagSynchronized, "synchronized"},
	{FlagNative, "native"},
	{FlagStrictfp, "strictfp"},
}

var modifierTokens = map[TokenKind]Modifier{
	TokenPublic:       FlagPublic,
	TokenPrivate:      FlagPrivate,
	TokenProtected:    FlagProtected,
	TokenStatic:       FlagStatic,
	TokenFinal:        FlagFinal,
	TokenSynchronized: FlagSynchronized,
	TokenVolatile:     FlagVolatile,
	TokenTransient:    FlagTransient,
	TokenNative:       FlagNative,
	TokenAbstract:     FlagAbstract,
	TokenStrictfp:     FlagStrictfp,
}

// Keywords returns the modifier keywords in s, in canonical order.
func (s Modifier) Keywords() []string {
	var out []string
	for _, m := range modifierOrder {
		if s&m.flag != 0 {
			out = append(out, m.name)
		}
	}
	return out
}

func (s Modifier) String() string {
	words := s.Keywords()
	if s&FlagDeprecated != 0 {
		words = append(words, "@deprecated")
	}
	if s&FlagAnnotation != 0 {
		words = append(words, "@interface")
	}
	if s&FlagVarargs != 0 {
		words = append(words, "varargs")
	}
	return strings.Join(words, " ")
}
