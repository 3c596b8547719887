// Package matcher locates candidate home records for a client record using
// an ordered chain of tiers. Each tier is a pure lookup over the read-only
// home catalog; the chain accepts the first tier whose candidates produce a
// handled verdict.
package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
)

// TierType identifies a matching strategy.
type TierType int

const (
	// DocumentNumber matches home Document Number exactly.
	DocumentNumber TierType = iota
	// TitleKeywords matches the document number inside the home Title.
	TitleKeywords
	// RevisionDescription matches the document number inside the home
	// Revision Description.
	RevisionDescription
)

// String returns the tier's stable name, used in logs and statistics.
func (t TierType) String() string {
	switch t {
	case DocumentNumber:
		return "document_number"
	case TitleKeywords:
		return "title_keywords"
	case RevisionDescription:
		return "revision_description"
	default:
		return "unknown"
	}
}

// Tier is one matching strategy.
type Tier interface {
	// Type returns the strategy implemented by the tier.
	Type() TierType
	// Applies reports whether the tier runs for the client record.
	Applies(client ledger.ClientRecord) bool
	// Match returns the catalog records matching the client, in catalog order.
	Match(client ledger.ClientRecord, catalog *ledger.HomeCatalog) []ledger.HomeRecord
}

// Default returns the standard tier order: document number, title, description.
func Default() []Tier {
	return []Tier{
		documentNumberTier{},
		titleKeywordsTier{},
		revisionDescriptionTier{},
	}
}

// ForType returns the tier implementing t.
func ForType(t TierType) (Tier, bool) {
	switch t {
	case DocumentNumber:
		return documentNumberTier{}, true
	case TitleKeywords:
		return titleKeywordsTier{}, true
	case RevisionDescription:
		return revisionDescriptionTier{}, true
	default:
		return nil, false
	}
}

// filter returns the records accepted by keep.
func filter(catalog *ledger.HomeCatalog, keep func(ledger.HomeRecord) bool) []ledger.HomeRecord {
	var out []ledger.HomeRecord
	for _, rec := range catalog.Records() {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

type documentNumberTier struct{}

func (documentNumberTier) Type() TierType { return DocumentNumber }

func (documentNumberTier) Applies(client ledger.ClientRecord) bool {
	return client.DocNumber.Known()
}

func (documentNumberTier) Match(client ledger.ClientRecord, catalog *ledger.HomeCatalog) []ledger.HomeRecord {
	if client.DocNumber.IsUnknown() {
		return nil
	}
	doc := client.DocNumber.String()
	return filter(catalog, func(rec ledger.HomeRecord) bool {
		return rec.DocumentNumber.String() == doc
	})
}

var keywordPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

type titleKeywordsTier struct{}

func (titleKeywordsTier) Type() TierType { return TitleKeywords }

func (titleKeywordsTier) Applies(client ledger.ClientRecord) bool {
	return client.DocNumber.Known()
}

// Match accepts titles containing the document number verbatim. Document
// numbers with letters or spaces also match when every alphanumeric token
// appears in the title in any order, ignoring case; a single token must
// match verbatim.
func (titleKeywordsTier) Match(client ledger.ClientRecord, catalog *ledger.HomeCatalog) []ledger.HomeRecord {
	if client.DocNumber.IsUnknown() {
		return nil
	}
	doc := client.DocNumber.String()

	var keywords []string
	if strings.ContainsRune(doc, ' ') || strings.IndexFunc(doc, isASCIILetter) >= 0 {
		keywords = keywordPattern.FindAllString(doc, -1)
		for i, k := range keywords {
			keywords[i] = strings.ToUpper(k)
		}
	}

	return filter(catalog, func(rec ledger.HomeRecord) bool {
		title := rec.Title.String()
		if strings.Contains(title, doc) {
			return true
		}
		if len(keywords) < 2 {
			return false
		}
		upper := strings.ToUpper(title)
		for _, k := range keywords {
			if !strings.Contains(upper, k) {
				return false
			}
		}
		return true
	})
}

type revisionDescriptionTier struct{}

func (revisionDescriptionTier) Type() TierType { return RevisionDescription }

// Applies restricts the description tier to rows without a Formatted hint.
func (revisionDescriptionTier) Applies(client ledger.ClientRecord) bool {
	return client.DocNumber.Known() && client.FormattedHint.IsUnknown()
}

func (revisionDescriptionTier) Match(client ledger.ClientRecord, catalog *ledger.HomeCatalog) []ledger.HomeRecord {
	if client.DocNumber.IsUnknown() {
		return nil
	}
	doc := strings.ToLower(client.DocNumber.String())
	return filter(catalog, func(rec ledger.HomeRecord) bool {
		return strings.Contains(strings.ToLower(rec.RevisionDescription.String()), doc)
	})
}

func isASCIILetter(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

// ParseTierType parses a tier name as returned by TierType.String.
func ParseTierType(s string) (TierType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range []TierType{DocumentNumber, TitleKeywords, RevisionDescription} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, &errors.ValidationError{
		Field:   "tier",
		Value:   s,
		Message: "must be one of document_number, title_keywords, revision_description",
	}
}
