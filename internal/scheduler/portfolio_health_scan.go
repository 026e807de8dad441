// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-success-api/infrastructure/repository"
	"github.com/vfg2006/customer-success-api/internal/config"
	"github.com/vfg2006/customer-success-api/internal/domain"
	"github.com/vfg2006/customer-success-api/internal/usecases/trending"
)

type PortfolioScanConfig struct {
	CronSchedule  string
	LookbackDays  int
	RetentionDays int
	Enabled       bool
}

// PortfolioScanService roda a análise de portfólio periodicamente e registra
// os buckets de alerta. A entrega das notificações (Slack/email) é feita por
// um serviço externo que consome estes logs.
type PortfolioScanService struct {
	scheduler           *gocron.Scheduler
	trendService        trending.TrendAnalyzer
	snapshotRepo        repository.HealthSnapshotRepository
	config              PortfolioScanConfig
	scanRunning         bool
	scanMutex           sync.Mutex
	lastScanStartedAt   time.Time
	lastScanCompletedAt time.Time
}

func NewPortfolioScanService(
	trendService trending.TrendAnalyzer,
	snapshotRepo repository.HealthSnapshotRepository,
	cfg *config.Config,
) *PortfolioScanService {
	scanConfig := PortfolioScanConfig{
		CronSchedule:  cfg.PortfolioScan.CronSchedule, // Default: 7h da manhã todos os dias
		LookbackDays:  cfg.PortfolioScan.LookbackDays,
		RetentionDays: cfg.PortfolioScan.RetentionDays,
		Enabled:       cfg.PortfolioScan.Enabled, // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": scanConfig.CronSchedule,
	}).Info("Configuração do agendador de varredura do portfólio carregada")

	return &PortfolioScanService{
		scheduler:    scheduler,
		trendService: trendService,
		snapshotRepo: snapshotRepo,
		config:       scanConfig,
	}
}

func (s *PortfolioScanService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de varredura do portfólio desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de varredura do portfólio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.ScanPortfolio(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura do portfólio")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura do portfólio: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de varredura do portfólio")
		s.scheduler.Stop()
	}()

	return nil
}

// ScanPortfolio roda a análise completa e registra os alertas encontrados
func (s *PortfolioScanService) ScanPortfolio(ctx context.Context) error {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Warn("Varredura do portfólio já está em execução")
		return nil
	}
	s.scanRunning = true
	s.lastScanStartedAt = time.Now()
	s.scanMutex.Unlock()

	defer func() {
		s.scanMutex.Lock()
		s.scanRunning = false
		s.lastScanCompletedAt = time.Now()
		s.scanMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de health score do portfólio")

	analysis, err := s.trendService.PortfolioHealthTrendAnalysis(ctx, &domain.TrendFilters{
		Days: s.config.LookbackDays,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao analisar o portfólio na varredura agendada")
		return err
	}

	s.logAlerts(analysis)

	s.pruneOldSnapshots()

	logrus.WithFields(logrus.Fields{
		"customers":  analysis.Overview.TotalCustomers,
		"avg_score":  analysis.Overview.AvgHealthScore,
		"change_wow": analysis.Overview.ScoreChangeWoW,
		"insights":   len(analysis.Insights),
	}).Info("Varredura de health score do portfólio concluída")

	return nil
}

// logAlerts registra cada bucket de alerta em formato consumível pelo
// serviço de notificações
func (s *PortfolioScanService) logAlerts(analysis *domain.HealthScoreTrendAnalysis) {
	if analysis.Alerts == nil {
		return
	}

	for _, alert := range analysis.Alerts.NewCritical {
		logrus.WithFields(logrus.Fields{
			"alert_type":     "new_critical",
			"customer_id":    alert.CustomerID,
			"customer_name":  alert.CustomerName,
			"current_score":  alert.CurrentScore,
			"previous_score": alert.PreviousScore,
			"arr":            alert.ARR,
		}).Warn("Cliente entrou na faixa crítica de health score")
	}

	for _, alert := range analysis.Alerts.SteepDeclines {
		logrus.WithFields(logrus.Fields{
			"alert_type":    "steep_decline",
			"customer_id":   alert.CustomerID,
			"customer_name": alert.CustomerName,
			"current_score": alert.CurrentScore,
			"slope":         alert.Slope,
			"arr":           alert.ARR,
		}).Warn("Cliente com queda acentuada de health score")
	}

	for _, alert := range analysis.Alerts.RenewalsAtRisk {
		fields := logrus.Fields{
			"alert_type":    "renewal_at_risk",
			"customer_id":   alert.CustomerID,
			"customer_name": alert.CustomerName,
			"current_score": alert.CurrentScore,
			"arr":           alert.ARR,
		}
		if alert.DaysToRenewal != nil {
			fields["days_to_renewal"] = *alert.DaysToRenewal
		}
		logrus.WithFields(fields).Warn("Renovação em risco")
	}
}

// pruneOldSnapshots expurga snapshots fora da janela de retenção. Falha de
// expurgo não derruba a varredura.
func (s *PortfolioScanService) pruneOldSnapshots() {
	if s.config.RetentionDays <= 0 || s.snapshotRepo == nil {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao expurgar snapshots antigos")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("Snapshots antigos expurgados")
	}
}

// TriggerManualScan inicia manualmente uma varredura do portfólio
func (s *PortfolioScanService) TriggerManualScan() {
	s.scanMutex.Lock()
	if s.scanRunning {
		s.scanMutex.Unlock()
		logrus.Info("Varredura do portfólio já em andamento, ignorando solicitação manual")
		return
	}
	s.scanMutex.Unlock()

	logrus.Info("Iniciando varredura manual do portfólio")
	go s.ScanPortfolio(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *PortfolioScanService) GetStatus() map[string]any {
	s.scanMutex.Lock()
	defer s.scanMutex.Unlock()

	return map[string]any{
		"scan_enabled":           s.config.Enabled,
		"scan_cron":              s.config.CronSchedule,
		"scan_running":           s.scanRunning,
		"last_scan_started_at":   s.lastScanStartedAt,
		"last_scan_completed_at": s.lastScanCompletedAt,
	}
}
