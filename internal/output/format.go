package output

import (
	"strconv"

	"github.com/roach88/fwdmuon/internal/model"
)

// Header lists the report columns in their fixed order.
var Header = []string{
	"ID", "eta", "pt", "p", "phi", "motherPDG", "nClusters",
	"pDca", "chi2", "chi2MatchMCHMID", "chi2MatchMCHMFT", "isPrompt",
}

// Record formats r as report fields matching Header.
func Record(r model.Result) []string {
	prompt := "0"
	if r.IsPrompt {
		prompt = "1"
	}
	return []string{
		strconv.FormatInt(int64(r.TruthID), 10),
		formatFloat(r.RecoEta),
		formatFloat(r.RecoPt),
		formatFloat(r.RecoP),
		formatFloat(r.RecoPhi),
		strconv.Itoa(r.MotherPDG),
		strconv.Itoa(r.NClusters),
		formatFloat(r.PDCA),
		formatFloat(r.Chi2),
		formatFloat(r.Chi2MatchMCHMID),
		formatFloat(r.Chi2MatchMCHMFT),
		prompt,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
