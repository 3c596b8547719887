// Package verdict compares a client record against candidate home records
// and produces the Result, Doc Call Number and Note for that record.
//
// Rows with a Formatted hint take the hinted path: a TR hint searches the
// home Revision Description for the client's TR token, any other hint is
// looked up literally. Rows without a hint compare revision numbers and
// dates directly.
package verdict

import (
	"fmt"
	"strings"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/normalize"
)

// Classify produces the outcome for client against candidates. No
// candidates yields an unhandled outcome.
func Classify(client ledger.ClientRecord, candidates []ledger.HomeRecord) ledger.Outcome {
	if len(candidates) == 0 {
		return ledger.Outcome{}
	}
	if client.FormattedHint.Known() {
		return Hinted(client, candidates)
	}
	return Unhinted(client, candidates)
}

// Hinted classifies a row carrying a Formatted hint. It always handles a
// non-empty candidate set.
func Hinted(client ledger.ClientRecord, candidates []ledger.HomeRecord) ledger.Outcome {
	if len(candidates) == 0 {
		return ledger.Outcome{}
	}

	out := ledger.Outcome{
		Handled:       true,
		Candidates:    len(candidates),
		DocCallNumber: joinCallNumbers(candidates),
	}
	if out.Duplicated() {
		out.Note = constants.NoteDuplicated
	}

	hint := strings.ToUpper(client.FormattedHint.String())
	if strings.Contains(hint, "TR") {
		out.Result = classifyTR(client, candidates)
	} else {
		out.Result = classifyLiteral(hint, candidates)
	}
	return out
}

// classifyTR verifies when any candidate's description contains the
// client's TR token and the dates agree. Otherwise it reports the first
// candidate carrying revision details.
func classifyTR(client ledger.ClientRecord, candidates []ledger.HomeRecord) string {
	token := normalize.TRString(client.RevisionNo.String())
	clientDate := normalize.ParseValue(client.RevisionDate)

	detail := ""
	for _, c := range candidates {
		desc := normalize.TRString(c.RevisionDescription.String())
		revMatch := desc != "" && strings.Contains(desc, token)
		if revMatch && normalize.DatesEqual(clientDate, normalize.ParseValue(c.RevisionDate)) {
			return constants.ResultVerified
		}
		if detail == "" {
			detail = mismatchDetail(c)
		}
	}
	if detail == "" {
		return constants.ResultTRNotFound
	}
	return detail
}

// mismatchDetail renders "Rev. Num: <n>/ Rev. Date: <d>", omitting empty parts.
func mismatchDetail(c ledger.HomeRecord) string {
	var parts []string
	if c.RevisionNum.Known() {
		parts = append(parts, "Rev. Num: "+c.RevisionNum.String())
	}
	if c.RevisionDate.Known() {
		parts = append(parts, "Rev. Date: "+c.RevisionDate.String())
	}
	return strings.Join(parts, "/ ")
}

func classifyLiteral(hint string, candidates []ledger.HomeRecord) string {
	for _, c := range candidates {
		if strings.Contains(strings.ToUpper(c.RevisionDescription.String()), hint) {
			return constants.ResultVerified
		}
	}
	return fmt.Sprintf("%s not found in Revision Description", hint)
}

// Unhinted compares revision numbers and dates of each candidate. A blank
// client date adds the no-date note and never verifies.
func Unhinted(client ledger.ClientRecord, candidates []ledger.HomeRecord) ledger.Outcome {
	if len(candidates) == 0 {
		return ledger.Outcome{}
	}

	clientRev := normalize.BasicRevision(client.RevisionNo)
	clientDate := normalize.ParseValue(client.RevisionDate)
	noDate := client.RevisionDate.IsUnknown()

	results := make([]string, 0, len(candidates))
	for _, c := range candidates {
		homeRev := normalize.BasicRevision(c.RevisionNum)
		revMatch := normalize.RevisionsEqual(clientRev, homeRev)
		dateMatch := !noDate && normalize.DatesEqual(clientDate, normalize.ParseValue(c.RevisionDate))

		if revMatch && dateMatch {
			results = append(results, constants.ResultVerified)
			continue
		}
		results = append(results, normalize.RevisionDisplay(homeRev)+"/"+c.RevisionDate.String())
	}

	out := ledger.Outcome{
		Handled:    true,
		Candidates: len(candidates),
		Result:     results[0],
	}
	if out.Duplicated() {
		out.Note = constants.NoteDuplicated
		out.DocCallNumber = joinCallNumbers(candidates)
		return out
	}

	out.DocCallNumber = candidates[0].CallNumber.String()
	if noDate {
		out.Note = constants.NoteNoRevisionDate
	}
	return out
}

func joinCallNumbers(candidates []ledger.HomeRecord) string {
	var calls []string
	for _, c := range candidates {
		if c.CallNumber.Known() {
			calls = append(calls, c.CallNumber.String())
		}
	}
	return strings.Join(calls, constants.CallNumberSeparator)
}

// IsVerified reports whether a Result text is the verified verdict.
func IsVerified(result string) bool {
	return result == constants.ResultVerified
}

// IsNotFound reports whether a Result text falls in the not-found bucket.
func IsNotFound(result string) bool {
	return strings.Contains(result, constants.ResultNotFound)
}

// IsMismatch reports whether a Result text is a revision/date mismatch detail.
func IsMismatch(result string) bool {
	return strings.Contains(result, "/") && !IsVerified(result)
}
