package seed

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/limaJavier/fixture/pkg/logger"
	"github.com/limaJavier/fixture/pkg/model"
	"github.com/samber/lo"
)

var ErrNoSeedMatches = errors.New("seed fixture does not map any match")

// Diagnostics reports how a fixture was mapped onto the matches
type Diagnostics struct {
	Rows            int // Well-formed fixture rows
	Malformed       int // Skipped fixture rows
	Mapped          int // Matches whose gene was seeded
	Unmapped        int // Matches absent from the fixture
	Rejected        int // Matches whose fixture slot is not among their options
	RejectedEntries []string
}

type Loader interface {
	// Maps fixture rows onto a genome; genes of matches that cannot be mapped are model.Unset.
	// A fixture mapping no match yields a nil genome and ErrNoSeedMatches.
	Load(rows []FixtureRow) (model.Genome, Diagnostics, error)

	// Reads the fixture file and loads it
	LoadFile(path string) (model.Genome, Diagnostics, error)
}

type loaderStandard struct {
	input   model.ModelInput
	indexer model.Indexer
	courts  map[string]string // Normalized court name to the court id used by the slot catalog
	logger  logger.Logger
}

func NewLoader(input model.ModelInput, log logger.Logger) Loader {
	// Explicit slots may reference courts absent from the configuration
	catalogCourts := lo.Map(lo.Flatten(input.SlotCatalog), func(slot model.SlotOption, _ int) string { return slot.Court })
	courts := lo.SliceToMap(lo.Uniq(append(catalogCourts, input.CourtIds()...)), func(courtId string) (string, string) {
		return Normalize(courtId), courtId
	})

	return &loaderStandard{
		input:   input,
		indexer: model.NewIndexer(input.SlotCatalog),
		courts:  courts,
		logger:  logger.OrNop(log),
	}
}

func (loader *loaderStandard) LoadFile(path string) (model.Genome, Diagnostics, error) {
	rows, malformed, err := ReadFixture(path)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	genome, diagnostics, err := loader.Load(rows)
	diagnostics.Malformed = malformed
	if malformed > 0 {
		loader.logger.Warnf("Skipped %d malformed fixture rows in \"%v\"", malformed, path)
	}
	return genome, diagnostics, err
}

func (loader *loaderStandard) Load(rows []FixtureRow) (model.Genome, Diagnostics, error) {
	diagnostics := Diagnostics{Rows: len(rows)}

	// Later rows override earlier ones sharing the key
	targets := make(map[string]model.SlotOption, len(rows))
	for _, row := range rows {
		targets[Key(row.Category, row.Team1, row.Team2)] = model.SlotOption{
			Court: loader.court(row.Court),
			Hour:  row.StartHour,
		}
	}

	genome := make(model.Genome, len(loader.input.Matches))
	for i, match := range loader.input.Matches {
		genome[i] = model.Unset

		target, ok := targets[Key(match.Category, match.Home, match.Away)]
		if !ok {
			diagnostics.Unmapped++
			continue
		}

		index, ok := loader.indexer.Index(i, target)
		if !ok {
			diagnostics.Rejected++
			entry := fmt.Sprintf("match %v (%v vs %v, %v) at %v %d:00", match.Id, match.Home, match.Away, match.Category, target.Court, target.Hour)
			diagnostics.RejectedEntries = append(diagnostics.RejectedEntries, entry)
			loader.logger.Debugf("Rejected seed entry for %v: slot is not eligible", entry)
			continue
		}

		genome[i] = index
		diagnostics.Mapped++
	}

	loader.logger.Infof("Seed mapped %d of %d matches (%d unmapped, %d rejected)",
		diagnostics.Mapped, len(loader.input.Matches), diagnostics.Unmapped, diagnostics.Rejected)

	if diagnostics.Mapped == 0 {
		return nil, diagnostics, ErrNoSeedMatches
	}
	return genome, diagnostics, nil
}

// Resolves a fixture court name to a known court id, keeping unknown names as they are
func (loader *loaderStandard) court(name string) string {
	if courtId, ok := loader.courts[Normalize(name)]; ok {
		return courtId
	}
	return name
}

// Normalize removes whitespace and punctuation and upper-cases the rest
func Normalize(name string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			return -1
		}
		return r
	}, name))
}

// Key identifies a match by its category and its unordered pair of teams
func Key(category, team1, team2 string) string {
	teams := []string{Normalize(team1), Normalize(team2)}
	slices.Sort(teams)
	return Normalize(category) + "|" + teams[0] + "|" + teams[1]
}
