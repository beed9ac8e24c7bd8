package models

import (
	"fmt"
	"time"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
)

// Stage is a step of the deploy-and-wire sequence
type Stage string

const (
	StageIdle                 Stage = "idle"
	StageFactoryDeployed      Stage = "factory deployed"
	StagePoolDeployerDeployed Stage = "pool deployer deployed"
	StageVaultDeployed        Stage = "vault deployed"
	StageStubDeployed         Stage = "vault factory stub deployed"
	StageWired                Stage = "wired"
	StagePersisted            Stage = "persisted"
)

// Stages lists every stage in the order a run passes through them
var Stages = []Stage{
	StageIdle,
	StageFactoryDeployed,
	StagePoolDeployerDeployed,
	StageVaultDeployed,
	StageStubDeployed,
	StageWired,
	StagePersisted,
}

// StageFor returns the stage reached once component is finalized
func StageFor(c Component) Stage {
	switch c {
	case Factory:
		return StageFactoryDeployed
	case PoolDeployer:
		return StagePoolDeployerDeployed
	case Vault:
		return StageVaultDeployed
	case VaultFactoryStub:
		return StageStubDeployed
	default:
		return StageIdle
	}
}

func (s Stage) index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the stage that follows s, or false for the terminal stage
func (s Stage) Next() (Stage, bool) {
	i := s.index()
	if i < 0 || i == len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

// Reached reports whether s is at or beyond other
func (s Stage) Reached(other Stage) bool {
	return s.index() >= other.index()
}

// Transition records when a stage was entered
type Transition struct {
	Stage Stage
	At    time.Time
}

// Progression tracks a run through the stage sequence. Each call to Advance
// must name the immediate successor of the current stage.
type Progression struct {
	current Stage
	history []Transition
	now     func() time.Time
}

// NewProgression starts a progression in StageIdle
func NewProgression() *Progression {
	p := &Progression{current: StageIdle, now: time.Now}
	p.history = []Transition{{Stage: StageIdle, At: p.now()}}
	return p
}

// Current returns the latest stage reached
func (p *Progression) Current() Stage {
	return p.current
}

// History returns every transition so far, oldest first
func (p *Progression) History() []Transition {
	out := make([]Transition, len(p.history))
	copy(out, p.history)
	return out
}

// Advance moves to next if it directly follows the current stage
func (p *Progression) Advance(next Stage) error {
	expected, ok := p.current.Next()
	if !ok || expected != next {
		return fmt.Errorf("%w: cannot move from %q to %q", domain.ErrInvalidTransition, p.current, next)
	}
	p.current = next
	p.history = append(p.history, Transition{Stage: next, At: p.now()})
	return nil
}
