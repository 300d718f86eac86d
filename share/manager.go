// Copyright (c) 2024 The bddkit authors
//
// MIT License

package share

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager runs sharing rounds against one solver. A round corresponds to
// one mined diagram: the local filter is reset at the start of every round
// and the global filter every GlobalResetEvery rounds. Manager is safe for
// use from the construction driver's mining branch.
type Manager struct {
	mu     sync.Mutex
	db     *Database
	solver Solver
	cfg    Config
	round  int
	log    *logrus.Entry
}

// NewManager builds a sharing manager forwarding to s.
func NewManager(s Solver, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		db:     NewDatabase(cfg),
		solver: s,
		cfg:    cfg,
		log:    logrus.WithField("pkg", "share"),
	}
}

// Round returns the number of completed sharing rounds.
func (m *Manager) Round() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.round
}

// Share runs one round over the mined clauses and returns how many were
// forwarded to the solver. Empty clauses are skipped; they carry no
// decision information for the solver.
func (m *Manager) Share(clauses [][]int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.round++
	m.db.ResetLocal()
	if m.round%m.cfg.GlobalResetEvery == 0 {
		m.db.ResetGlobal()
	}

	forwarded := 0
	for _, c := range clauses {
		if len(c) == 0 {
			continue
		}
		if m.db.Admit(c) {
			AddClause(m.solver, c)
			forwarded++
		}
	}
	if forwarded > 0 {
		m.log.WithFields(logrus.Fields{
			"round":     m.round,
			"mined":     len(clauses),
			"forwarded": forwarded,
		}).Debug("shared learned clauses")
	}
	return forwarded
}
