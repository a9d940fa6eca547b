package prepare

import (
	"context"
	"errors"
	"fmt"

	"collection-prep/core/lock"
	"collection-prep/core/reconcile"
	"collection-prep/feature/snapshot"

	"go.uber.org/zap"
)

// ErrNothingToVerify is returned when no sink besides the local file can be read back.
var ErrNothingToVerify = errors.New("no published sinks to verify")

// VerifyReport is the outcome of comparing the published snapshots.
type VerifyReport struct {
	*reconcile.ReconcilePlan
	// Repaired lists the sinks rewritten from the local file.
	Repaired []string `json:"repaired"`
}

// Verify compares every readable sink against the local snapshot file. With repair
// set, out of date sinks are rewritten from the local file.
func (s *Service) Verify(ctx context.Context, repair bool) (*VerifyReport, error) {
	runLock := lock.New(s.cfg.LockPath())
	if err := runLock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			s.logger.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	file := snapshot.NewFileSink(s.cfg.OutputPath(), s.logger)
	loaders := []snapshot.Loader{file}
	for _, sink := range s.sinks {
		if l, ok := sink.(snapshot.Loader); ok {
			loaders = append(loaders, l)
		}
	}
	if len(loaders) < 2 {
		return nil, ErrNothingToVerify
	}

	plan, err := snapshot.Verify(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	report := &VerifyReport{ReconcilePlan: plan, Repaired: []string{}}
	s.logger.Info("Snapshots verified",
		zap.Strings("sources", plan.Sources),
		zap.Int("games", plan.Summary.TotalItems),
		zap.Int("mismatches", plan.Summary.Mismatches),
		zap.Int("actions", len(plan.Actions)))

	if !repair || plan.InSync() {
		return report, nil
	}

	ds, err := file.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repair needs the local snapshot: %w", err)
	}
	username := s.defaultUsername
	if username == "" {
		username = "repair"
	}
	repaired, err := snapshot.Repair(ctx, plan, snapshot.NewRun(username, ds), s.sinks...)
	report.Repaired = append(report.Repaired, repaired...)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Sinks repaired", zap.Strings("sinks", repaired))
	return report, nil
}
