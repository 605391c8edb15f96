package poproject

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/loopcontext/poproject/internal/po"
)

// verifiable limits the check to entries a gettext runtime resolves the same
// way regardless of its escape and fuzzy handling.
func verifiable(e *po.Entry) bool {
	if e.Fuzzy() || e.MsgIDPlural != "" || e.MsgStr == "" {
		return false
	}
	for _, s := range []string{e.MsgID, e.MsgStr, e.MsgCtxt} {
		if strings.ContainsAny(s, "\\\"\n\t\r") {
			return false
		}
	}
	return true
}

// verifySaved loads the saved catalog into a gettext runtime and returns one
// message per merged entry that does not resolve to its new translation.
func verifySaved(data []byte, merged []*po.Entry) []string {
	rt := gotext.NewPo()
	rt.Parse(data)
	// Look translations up directly; Get and GetC treat msgids as formats.
	plain := rt.GetDomain().GetTranslations()
	withCtxt := rt.GetDomain().GetCtxTranslations()

	var problems []string
	for _, e := range merged {
		if !verifiable(e) {
			continue
		}
		tr := plain[e.MsgID]
		if e.MsgCtxt != "" {
			tr = withCtxt[e.MsgCtxt][e.MsgID]
		}
		var got string
		if tr != nil {
			got = tr.Get()
		}
		if got != e.MsgStr {
			problems = append(problems, fmt.Sprintf("saved catalog resolves [%s] to %q, expected %q", e.MsgID, got, e.MsgStr))
		}
	}
	return problems
}
