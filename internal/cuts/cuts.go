// Package cuts evaluates optional reco-track quality selections written as
// expressions, e.g. "nclusters >= 8 && chi2 < 5".
//
// Variables available to an expression:
//
//	eta, pt, p, phi, pdca, chi2, chi2_mchmid, chi2_mchmft  float
//	nclusters                                              int
package cuts

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/roach88/fwdmuon/internal/model"
)

// Cut is a compiled track selection. A nil *Cut accepts every track.
type Cut struct {
	src  string
	prog *vm.Program
}

// Compile parses and type-checks src. An empty expression yields a nil
// Cut, which passes everything.
func Compile(src string) (*Cut, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	prog, err := expr.Compile(src, expr.Env(env(model.Track{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile cut %q: %w", src, err)
	}
	return &Cut{src: src, prog: prog}, nil
}

// Pass reports whether t satisfies the cut.
func (c *Cut) Pass(t model.Track) (bool, error) {
	if c == nil {
		return true, nil
	}
	out, err := expr.Run(c.prog, env(t))
	if err != nil {
		return false, fmt.Errorf("evaluate cut %q: %w", c.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("cut %q must evaluate to bool (got %T)", c.src, out)
	}
	return ok, nil
}

// String returns the cut's source expression.
func (c *Cut) String() string {
	if c == nil {
		return ""
	}
	return c.src
}

func env(t model.Track) map[string]any {
	return map[string]any{
		"eta":         t.Eta,
		"pt":          t.Pt,
		"p":           t.P,
		"phi":         t.Phi,
		"nclusters":   t.NClusters,
		"pdca":        t.PDCA,
		"chi2":        t.Chi2,
		"chi2_mchmid": t.Chi2MatchMCHMID,
		"chi2_mchmft": t.Chi2MatchMCHMFT,
	}
}
