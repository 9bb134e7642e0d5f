// Package segment partitions report text into one block per numbered
// indicator and recovers each block's grade and justification text.
package segment

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/ufpr-cpa/inep-extractor/constants"
	"github.com/ufpr-cpa/inep-extractor/internal/entity"
)

var (
	// blockStart anchors the lookahead split: a line beginning with an
	// indicator number ("1.1.", "3.17."). Each block keeps its leading
	// delimiter as the block's indicator id.
	blockStart  = regexp.MustCompile(`(?m)^\s*\d+\.\d+\.`)
	blockHeader = regexp.MustCompile(`^\s*(\d+\.\d+)\.`)

	// gradeAndMarker is the well-structured-source strategy: one match
	// capturing the indicator id and the grade token sitting between the id
	// and the justification marker. The lazy gap forces the captured token
	// to be the one immediately before the marker.
	gradeAndMarker = regexp.MustCompile(`(?is)^\s*(\d+\.\d+)\.\s.*?(?:\b([0-5])\b|\b(NSA)\b)\s*Justificativa\s+para\s+conceito[^:]*:`)

	// marker locates the justification phrase; everything after its colon to
	// the end of the block is the justification candidate. The inner token is
	// captured because older template generations carry the grade there
	// ("Justificativa para conceito 4:") instead of before the phrase.
	marker = regexp.MustCompile(`(?i)Justificativa\s+para\s+conceito\s*([^:]*):`)
)

type Segmenter struct {
	logger *slog.Logger
}

func NewSegmenter(logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{logger: logger}
}

// Segment splits the text into indicator blocks and returns one entry per
// recognized indicator that carries a justification. Blocks whose id falls
// outside the known set are dropped; duplicate ids keep the first block.
// DocumentID on the returned entries is left empty for the assembler to fill.
func (s *Segmenter) Segment(documentID, text string) []entity.IndicatorEntry {
	starts := blockStart.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	entries := make([]entity.IndicatorEntry, 0, len(starts))

	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := text[loc[0]:end]

		head := blockHeader.FindStringSubmatch(block)
		if head == nil {
			continue
		}
		id := head[1]

		if !constants.IsValidIndicator(id) {
			s.logger.Debug("segment.indicator.out_of_range", "document_id", documentID, "indicator_id", id)
			continue
		}
		if _, dup := seen[id]; dup {
			s.logger.Debug("segment.indicator.duplicate", "document_id", documentID, "indicator_id", id)
			continue
		}

		// The first marker after the block header is authoritative even if
		// malformed input smuggles a second one into the block.
		mLoc := marker.FindStringSubmatchIndex(block)
		if mLoc == nil {
			continue
		}
		justification := collapse(block[mLoc[1]:])

		entry := entity.IndicatorEntry{
			IndicatorID:   id,
			Justification: justification,
		}
		if g := gradeAndMarker.FindStringSubmatch(block); g != nil {
			switch {
			case g[2] != "":
				entry.Grade = entity.ParseScore(g[2])
			case g[3] != "":
				entry.Grade = entity.NotApplicable()
			}
		}
		// Older template generations put the grade inside the marker phrase
		// instead of before it; the marker's inner token is the fallback.
		if !entry.Grade.Valid && mLoc[2] >= 0 {
			if g, ok := markerGrade(block[mLoc[2]:mLoc[3]]); ok {
				entry.Grade = g
			}
		}

		seen[id] = struct{}{}
		entries = append(entries, entry)
	}

	return entries
}

// markerGrade interprets the token inside the marker phrase as a grade. Only
// a single digit 0-5 or the not-applicable sentinel qualifies; anything else
// (an indicator id like "1.1", free text) is not a grade.
func markerGrade(token string) (entity.Score, bool) {
	token = strings.TrimSpace(token)
	if len(token) == 1 && token[0] >= '0' && token[0] <= '5' {
		return entity.ParseScore(token), true
	}
	if s := entity.ParseScore(token); s.NSA {
		return s, true
	}
	return entity.Score{}, false
}

// collapse folds internal newlines and whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
