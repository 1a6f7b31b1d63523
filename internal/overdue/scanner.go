package overdue

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go_shop/internal/model"
)

// Scanner periodically reports installment orders whose second tranche is
// past due and still pending. Read-only: due-date breach is never written
// back as a state transition, it only surfaces in logs and read paths.
type Scanner struct {
	ctx      context.Context
	cancel   context.CancelFunc
	db       *gorm.DB
	logger   *logrus.Entry
	interval time.Duration
}

// Config holds the configuration for the overdue scanner
type Config struct {
	DB          *gorm.DB
	Logger      *logrus.Entry
	IntervalSec int
}

// NewScanner creates a new overdue scanner
func NewScanner(cfg *Config) *Scanner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scanner{
		ctx:      ctx,
		cancel:   cancel,
		db:       cfg.DB,
		logger:   cfg.Logger.WithField("component", "overdue-scanner"),
		interval: time.Duration(cfg.IntervalSec) * time.Second,
	}
}

// Start begins the periodic scans
func (s *Scanner) Start() {
	s.logger.Info("Starting overdue scanner...")
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.scan()
			case <-s.ctx.Done():
				s.logger.Info("Stopping overdue scanner...")
				return
			}
		}
	}()
}

// Stop gracefully stops the scanner
func (s *Scanner) Stop() {
	s.cancel()
}

func (s *Scanner) scan() {
	now := time.Now()

	var orders []model.Order
	err := s.db.
		Where("payment_mode = ?", model.PaymentModeInstallment).
		Where("inst_second_status = ?", model.TrancheStatusPending).
		Where("inst_second_due_at IS NOT NULL AND inst_second_due_at < ?", now).
		Find(&orders).Error
	if err != nil {
		s.logger.Errorf("Failed to scan for overdue tranches: %v", err)
		return
	}

	if len(orders) == 0 {
		return
	}

	var outstanding int64
	for _, o := range orders {
		outstanding += o.Installment.SecondAmount
		s.logger.WithFields(logrus.Fields{
			"reference": o.Reference,
			"campaign":  o.CampaignSlug,
			"amount":    o.Installment.SecondAmount,
			"dueAt":     o.Installment.SecondDueAt.Format(time.RFC3339),
		}).Warn("Second tranche overdue")
	}

	s.logger.WithFields(logrus.Fields{
		"orders":      len(orders),
		"outstanding": outstanding,
	}).Info("Overdue scan completed")
}
