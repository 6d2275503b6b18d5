package postgres

import (
	"github.com/DanielMat97/BackendExtorApp/internal/service"
)

var (
	_ service.ReportRepository = (*ReportsRepo)(nil)
	_ service.StatsRepository  = (*StatsRepo)(nil)
)

func (p *Postgres) ReportStore() service.ReportRepository { return p.Reports }
func (p *Postgres) Stats() service.StatsRepository        { return p.Stat }
