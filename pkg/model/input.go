package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Unset marks a gene that has not been assigned a slot option yet
const Unset = -1

var ErrEmptySlotOptions = errors.New("match has no eligible slot options")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Match struct {
	Id       string
	Home     string
	Away     string
	Category string
}

type SlotOption struct {
	Court string
	Hour  int
}

type CourtConfig struct {
	Id                 string `validate:"required"`
	StartHour          int    `validate:"gte=0,lte=24"`
	EndHour            int    `validate:"gtefield=StartHour,lte=24"`
	MaxContinuousHours int    `validate:"gte=1"`
}

type InstitutionPriorityRule struct {
	Institution string  `validate:"required"`
	TargetCourt string  `validate:"required"`
	MinFraction float64 `validate:"gte=0,lte=1"`
}

type CategoryBlock struct {
	Name       string   `validate:"required"`
	Categories []string `validate:"required,min=1"`
}

// Exclusivity reserves a court for the matches of the given institution
type Exclusivity struct {
	Court       string `validate:"required"`
	Institution string `validate:"required"`
}

// Genome holds one gene per match; a gene is an index into the match's slot options
type Genome []int

type RawMatch struct {
	Id       string
	Home     string `validate:"required"`
	Away     string `validate:"required"`
	Category string
	Slots    []SlotOption // Explicit eligible slots, bypassing the court-hours expansion when present
}

type RawModelInput struct {
	Courts         []CourtConfig             `validate:"dive"`
	Exclusivities  []Exclusivity             `validate:"dive"`
	Priorities     []InstitutionPriorityRule `validate:"dive"`
	CategoryBlocks []CategoryBlock           `validate:"dive"`
	Matches        []RawMatch                `validate:"dive"`
}

type ModelInput struct {
	Matches        []Match
	SlotCatalog    [][]SlotOption // SlotCatalog[i] holds the ordered eligible options of Matches[i]; shared read-only during a run
	Courts         map[string]CourtConfig
	Priorities     []InstitutionPriorityRule
	CategoryBlocks []CategoryBlock
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var rawInput RawModelInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := validate.Struct(rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("invalid input: %w", err)
	}

	//** Manage courts
	courts := make(map[string]CourtConfig, len(rawInput.Courts))
	for _, court := range rawInput.Courts {
		if _, ok := courts[court.Id]; ok {
			return ModelInput{}, fmt.Errorf("duplicate court \"%v\"", court.Id)
		}
		courts[court.Id] = court
	}
	courtIds := lo.Keys(courts)
	slices.Sort(courtIds) // Sort courts to keep the catalog deterministic

	//** Manage exclusivities
	owners := make(map[string]map[string]bool)
	for _, exclusivity := range rawInput.Exclusivities {
		if _, ok := courts[exclusivity.Court]; !ok {
			return ModelInput{}, fmt.Errorf("exclusivity for \"%v\" references unknown court \"%v\"", exclusivity.Institution, exclusivity.Court)
		}
		if _, ok := owners[exclusivity.Court]; !ok {
			owners[exclusivity.Court] = make(map[string]bool)
		}
		owners[exclusivity.Court][exclusivity.Institution] = true
	}

	//** Manage priorities
	for _, rule := range rawInput.Priorities {
		if _, ok := courts[rule.TargetCourt]; !ok {
			return ModelInput{}, fmt.Errorf("priority rule for \"%v\" targets unknown court \"%v\"", rule.Institution, rule.TargetCourt)
		}
	}

	//** Manage matches and their slot catalog
	matches := make([]Match, 0, len(rawInput.Matches))
	catalog := make([][]SlotOption, 0, len(rawInput.Matches))
	for i, rawMatch := range rawInput.Matches {
		match := Match{
			Id:       rawMatch.Id,
			Home:     rawMatch.Home,
			Away:     rawMatch.Away,
			Category: rawMatch.Category,
		}
		if match.Id == "" {
			match.Id = fmt.Sprintf("P%d", i)
		}
		matches = append(matches, match)

		if len(rawMatch.Slots) > 0 {
			catalog = append(catalog, slices.Clone(rawMatch.Slots))
			continue
		}

		options := make([]SlotOption, 0)
		for _, courtId := range courtIds {
			// Exclusive courts only admit matches played by one of their owners
			if courtOwners, ok := owners[courtId]; ok && !courtOwners[match.Home] && !courtOwners[match.Away] {
				continue
			}
			court := courts[courtId]
			for hour := court.StartHour; hour < court.EndHour; hour++ {
				options = append(options, SlotOption{Court: courtId, Hour: hour})
			}
		}
		catalog = append(catalog, options)
	}

	input := ModelInput{
		Matches:        matches,
		SlotCatalog:    catalog,
		Courts:         courts,
		Priorities:     rawInput.Priorities,
		CategoryBlocks: rawInput.CategoryBlocks,
	}
	if err := input.Validate(); err != nil {
		return ModelInput{}, err
	}
	return input, nil
}

// Validate rejects unsatisfiable instances; it must pass before any genome is built
func (input ModelInput) Validate() error {
	if len(input.Matches) != len(input.SlotCatalog) {
		return fmt.Errorf("slot catalog has %d entries for %d matches", len(input.SlotCatalog), len(input.Matches))
	}

	for i, options := range input.SlotCatalog {
		if len(options) == 0 {
			match := input.Matches[i]
			return fmt.Errorf("match %v (%v vs %v, %v): %w", match.Id, match.Home, match.Away, match.Category, ErrEmptySlotOptions)
		}
	}

	for _, court := range input.Courts {
		if err := validate.Struct(court); err != nil {
			return fmt.Errorf("invalid court \"%v\": %w", court.Id, err)
		}
	}
	for _, rule := range input.Priorities {
		if err := validate.Struct(rule); err != nil {
			return fmt.Errorf("invalid priority rule for \"%v\": %w", rule.Institution, err)
		}
	}
	return nil
}

// CourtIds returns the configured courts in ascending order
func (input ModelInput) CourtIds() []string {
	courtIds := lo.Keys(input.Courts)
	slices.Sort(courtIds)
	return courtIds
}
