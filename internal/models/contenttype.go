package models

import "strings"

// ContentType is a bitmask of the resource types a URL rule is restricted or
// permitted to match. Values mirror AdGuard's own content-type bitmask so
// that a future upstream rule builder can be swapped in without retranslating
// the bit layout.
type ContentType uint32

// Named content-type bits. ALL is the union of the "ordinary" resource
// types that map onto a WebKit resource-type name (see ResourceTypes in
// package trigger); OBJECT, OBJECT_SUBREQUEST and WEBRTC are legacy
// Chromium/Gecko-only types that AdGuard still parses but that have no
// WebKit resource-type equivalent, so they are kept out of ALL; a rule whose
// sole permitted type is one of them is rejected (TranslateURL pre-reject,
// see package translator).
const (
	CTImage ContentType = 1 << iota
	CTStylesheet
	CTScript
	CTMedia
	CTXMLHTTPRequest
	CTOther
	CTWebSocket
	CTFont
	CTSubdocument
	CTObject
	CTObjectSubrequest
	CTWebRTC

	CTAll = CTImage | CTStylesheet | CTScript | CTMedia |
		CTXMLHTTPRequest | CTOther | CTWebSocket | CTFont | CTSubdocument
)

// Has reports whether all bits in other are set in ct.
func (ct ContentType) Has(other ContentType) bool { return ct&other == other }

// IsExactly reports whether ct is exactly other, the "sole permitted type"
// test used throughout the translator.
func (ct ContentType) IsExactly(other ContentType) bool { return ct == other }

// String returns a debug representation, used in error messages.
func (ct ContentType) String() string {
	if ct == 0 {
		return "none"
	}
	if ct == CTAll {
		return "all"
	}

	names := []struct {
		bit  ContentType
		name string
	}{
		{CTImage, "image"},
		{CTStylesheet, "stylesheet"},
		{CTScript, "script"},
		{CTMedia, "media"},
		{CTXMLHTTPRequest, "xmlhttprequest"},
		{CTOther, "other"},
		{CTWebSocket, "websocket"},
		{CTFont, "font"},
		{CTSubdocument, "subdocument"},
		{CTObject, "object"},
		{CTObjectSubrequest, "object-subrequest"},
		{CTWebRTC, "webrtc"},
	}

	var b strings.Builder
	for _, n := range names {
		if ct.Has(n.bit) {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n.name)
		}
	}

	return b.String()
}
