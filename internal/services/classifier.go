package services

import (
	"regexp"
	"unicode/utf8"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// Message-text predicates used by the moderation engine. All of them are
// total functions over strings with no side effects; the engine decides
// what, if anything, a match means.

var linkRegex = regexp.MustCompile(
	`(?i)(https?://\S+)|(bit\.ly/\S+)|(tinyurl\.com/\S+)|(facebook\.com/\S+)|(t\.me/\S+)`)

// Solicitation/scam phrases. The punitive path tied to this predicate is
// disabled unless PROHIBITED_PHRASE_ACTION is configured; the predicate
// itself stays available and tested.
var prohibitedPhraseRegex = regexp.MustCompile(
	`(?i)\b(dm\s*me|message\s*me|hit\s*me\s*up|contact\s*me|pm\s*me|direct\s*message\s*me|private\s*message\s*me|` +
		`i\s*can\s*help|i\s*offer|my\s*service|my\s*services|my\s*agency|agency|free\s*consultation|paid\s*call|` +
		`looking\s*for\s*clients|who\s*wants\s*help|i\s*sell|check\s*my|join\s*my|telegram|whatsapp|signal|` +
		`crypto|forex|airdrop|nft|wallet|send\s*money|scam|scammer|fake)\b`)

var ctaRegex = regexp.MustCompile(`(?i)\b(session|webinar|live|training|workshop)\b`)

func ContainsLink(text string) bool {
	return linkRegex.MatchString(text)
}

func ContainsProhibitedPhrase(text string) bool {
	return prohibitedPhraseRegex.MatchString(text)
}

func ContainsCallToAction(text string) bool {
	return ctaRegex.MatchString(text)
}

// IsOversized reports whether the message is at or beyond the length limit.
// Length is counted in runes, not bytes, so non-ASCII text is not penalized.
func IsOversized(text string, limit int) bool {
	return utf8.RuneCountInString(text) >= limit
}

// IsDuplicateWithinWindow reports whether text appears at least twice in the
// window. The window is expected to already contain the message being
// judged, so one prior identical message is enough to match.
func IsDuplicateWithinWindow(text string, window []models.MessageRecord) bool {
	n := 0
	for _, rec := range window {
		if rec.Content == text {
			n++
			if n >= 2 {
				return true
			}
		}
	}
	return false
}
