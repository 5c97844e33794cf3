// Package ident derives atomic class names from style declarations.
package ident

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/gosimple/slug"

	"rvcss/common"
)

// Segment lengths of generated class names.
const (
	BreakpointLength = 2
	SelectorLength   = 4
	KeyLength        = 4
	ValueLength      = 4
	RawLength        = 8
)

// Hasher turns text into short stable identifiers. Mode is fixed for the
// hasher lifetime.
type Hasher struct {
	mode common.HashMode
}

func New(mode common.HashMode) *Hasher {
	return &Hasher{mode: mode}
}

func (h *Hasher) Mode() common.HashMode {
	return h.mode
}

// Hash returns identifier for text. In production mode result is exactly
// length characters of base 36. In debug mode it is a readable slug of the
// text. Slug drops case, sign and punctuation, so when it does not reproduce
// text exactly numeric form is appended after "_", which slug of exact text
// never contains. Different texts never share a debug identifier unless their
// numeric forms collide.
func (h *Hasher) Hash(text string, length int) string {
	if h.mode == common.HashModeDebug {
		s := slug.Make(text)
		if s == text && !strings.Contains(text, "_") {
			return s
		}
		return s + "_" + numeric(text, length)
	}
	return numeric(text, length)
}

// numeric is a 32 bit rolling hash over UTF-16 code units, mixed with input
// length and first/last code units.
func numeric(text string, length int) string {
	units := utf16.Encode([]rune(text))

	var hash int32
	for _, c := range units {
		hash = hash<<5 - hash + int32(c)
	}
	hash ^= int32(len(units))
	if len(units) > 0 {
		hash ^= int32(units[0])<<16 ^ int32(units[len(units)-1])
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	s := strconv.FormatInt(abs, 36)
	if len(s) >= length {
		return s[:length]
	}
	return strings.Repeat("0", length-len(s)) + s
}

// ClassName assembles class name for a plain property in context: breakpoint,
// selector, key and value segments, absent segments are dropped.
func (h *Hasher) ClassName(key, value string, ctx Context) string {
	segments := h.contextSegments(ctx, 4)
	segments = append(segments, h.Hash(key, KeyLength), h.Hash(value, ValueLength))
	return "_" + strings.Join(segments, "-")
}

// RawClassName assembles class name for verbatim rule text in context.
func (h *Hasher) RawClassName(rule string, ctx Context) string {
	segments := h.contextSegments(ctx, 3)
	segments = append(segments, h.Hash(rule, RawLength))
	return "_" + strings.Join(segments, "-")
}

func (h *Hasher) contextSegments(ctx Context, capacity int) []string {
	segments := make([]string, 0, capacity)
	if ctx.Breakpoint != "" {
		segments = append(segments, h.Hash(ctx.Breakpoint, BreakpointLength))
	}
	if text := ctx.selectorText(); text != "" {
		segments = append(segments, h.Hash(text, SelectorLength))
	}
	return segments
}
