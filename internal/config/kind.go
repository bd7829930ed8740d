package config

import "strings"

// Kind is the closed set of launch strategies a tool can select.
type Kind int

const (
	KindUnknown Kind = iota
	KindPage         // local or remote HTML page ("html")
	KindURL          // web address opened verbatim ("url")
	KindScript       // script run through an interpreter ("python")
	KindExecutable   // program spawned directly ("exe")
	KindFile         // anything handed to the OS default handler ("file")
)

var kindTags = map[string]Kind{
	"html":       KindPage,
	"page":       KindPage,
	"url":        KindURL,
	"link":       KindURL,
	"python":     KindScript,
	"script":     KindScript,
	"exe":        KindExecutable,
	"executable": KindExecutable,
	"file":       KindFile,
}

// ParseKind maps a type tag to its Kind. Tags are case-insensitive.
func ParseKind(tag string) Kind {
	return kindTags[strings.ToLower(strings.TrimSpace(tag))]
}

// String returns the canonical tag written in config files.
func (k Kind) String() string {
	switch k {
	case KindPage:
		return "html"
	case KindURL:
		return "url"
	case KindScript:
		return "python"
	case KindExecutable:
		return "exe"
	case KindFile:
		return "file"
	case KindUnknown:
	}
	return "unknown"
}
