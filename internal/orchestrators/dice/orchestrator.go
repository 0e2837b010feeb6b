// Package dice implements the dice orchestrator behind the page's roll modal
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/debnet/fallout/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/pkg/idgen"
)

const (
	// MaxDice bounds the number of dice in one notation
	MaxDice = 100
	// MaxSides bounds the size of a die
	MaxSides = 1000
)

var (
	// Regex for dice notation like "2d6", "d20", "3d8+2" or "1d10-1"
	diceNotationRegex = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)
)

// Service defines the interface for dice operations
type Service interface {
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	// Roller is optional, the toolkit's default roller is used when nil
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
	idGen  idgen.Generator
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &orchestrator{
		roller: roller,
		idGen:  cfg.IDGenerator,
	}, nil
}

type notation struct {
	count    int
	size     int
	modifier int
}

func (n notation) String() string {
	s := fmt.Sprintf("%dd%d", n.count, n.size)
	if n.modifier > 0 {
		s += fmt.Sprintf("+%d", n.modifier)
	} else if n.modifier < 0 {
		s += strconv.Itoa(n.modifier)
	}
	return s
}

// parseDiceNotation parses dice notation, a missing count meaning one die
func parseDiceNotation(raw string) (notation, error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(raw, " ", "")))
	if len(matches) != 4 {
		return notation{}, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY+Z)", raw)
	}

	n := notation{count: 1}
	var err error

	if matches[1] != "" {
		if n.count, err = strconv.Atoi(matches[1]); err != nil {
			return notation{}, errors.InvalidArgumentf("invalid dice count in notation: %s", raw)
		}
	}
	if n.size, err = strconv.Atoi(matches[2]); err != nil {
		return notation{}, errors.InvalidArgumentf("invalid die size in notation: %s", raw)
	}
	if matches[3] != "" {
		if n.modifier, err = strconv.Atoi(matches[3]); err != nil {
			return notation{}, errors.InvalidArgumentf("invalid modifier in notation: %s", raw)
		}
	}

	if n.count <= 0 || n.size <= 0 {
		return notation{}, errors.InvalidArgumentf("dice count and size must be positive: %s", raw)
	}
	if n.count > MaxDice || n.size > MaxSides {
		return notation{}, errors.InvalidArgumentf("too many dice or sides: %s (max %dd%d)", raw, MaxDice, MaxSides)
	}

	return n, nil
}

// Roll rolls the notation with the configured roller
func (o *orchestrator) Roll(_ context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || strings.TrimSpace(input.Notation) == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	n, err := parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	faces, err := o.roller.RollN(n.count, n.size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", n)
	}

	total := n.modifier
	for _, f := range faces {
		total += f
	}

	roll := &Roll{
		RollID:   o.idGen.Generate(),
		Notation: n.String(),
		Count:    n.count,
		Size:     n.size,
		Modifier: n.modifier,
		Dice:     faces,
		Total:    total,
	}
	roll.Output = formatOutput(roll)

	slog.Info("Dice rolled successfully",
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollOutput{Roll: roll}, nil
}

// formatOutput renders "2d6+1: [3, 4] = 8"
func formatOutput(r *Roll) string {
	faces := make([]string, len(r.Dice))
	for i, f := range r.Dice {
		faces[i] = strconv.Itoa(f)
	}
	return fmt.Sprintf("%s: [%s] = %d", r.Notation, strings.Join(faces, ", "), r.Total)
}
