package app

import (
	"database/sql"

	"github.com/fieldkeep/fieldkeep/internal/auth"
	"github.com/fieldkeep/fieldkeep/internal/config"
	"github.com/fieldkeep/fieldkeep/internal/utils"
	"github.com/fieldkeep/fieldkeep/pkg/client"
	"github.com/fieldkeep/fieldkeep/pkg/expense"
	"github.com/fieldkeep/fieldkeep/pkg/quotation"
	"github.com/fieldkeep/fieldkeep/pkg/ratecard"
	"github.com/fieldkeep/fieldkeep/pkg/rbac"
	"github.com/fieldkeep/fieldkeep/pkg/report"
	"github.com/fieldkeep/fieldkeep/pkg/ticket"
	"github.com/fieldkeep/fieldkeep/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Policy *rbac.Policy
	Tokens *auth.Tokens

	AuthHandler *auth.Handler

	UserService user.Service
	UserHandler *user.Handler

	ClientRepo    client.ClientRepo
	ClientService client.Service
	ClientHandler *client.Handler

	TicketRepo    ticket.TicketRepo
	TicketService ticket.Service
	TicketHandler *ticket.Handler

	QuotationRepo    quotation.QuotationRepo
	QuotationService quotation.Service
	QuotationHandler *quotation.Handler

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	RateCardRepo    ratecard.RateCardRepo
	RateCardService ratecard.Service
	RateCardHandler *ratecard.Handler

	ReportService      report.Service
	CsvSummaryRenderer *report.CsvSummaryRendererImpl
	ReportHandler      *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application, policy *rbac.Policy) *Dependencies {
	deps := &Dependencies{}

	deps.Policy = policy
	deps.Tokens = auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	deps.Clock = &utils.SystemClock{}

	userService := user.NewUserService(user.NewUserRepo(db))
	deps.UserService = userService
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AuthHandler = auth.NewHandler(userService, deps.Tokens, policy, cfg.Auth.TokenTTL)

	deps.ClientRepo = client.NewClientRepo(db)
	deps.ClientService = client.NewService(deps.ClientRepo)
	deps.ClientHandler = client.NewHandler(deps.ClientService)

	deps.TicketRepo = ticket.NewTicketRepo(db)
	deps.TicketService = ticket.NewService(deps.TicketRepo)
	deps.TicketHandler = ticket.NewHandler(deps.TicketService)

	deps.QuotationRepo = quotation.NewQuotationRepo(db)
	deps.QuotationService = quotation.NewService(deps.QuotationRepo)
	deps.QuotationHandler = quotation.NewHandler(deps.QuotationService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.RateCardRepo = ratecard.NewRateCardRepo(db)
	deps.RateCardService = ratecard.NewService(deps.RateCardRepo)
	deps.RateCardHandler = ratecard.NewHandler(deps.RateCardService)

	deps.ReportService = report.NewService(deps.QuotationRepo, deps.ExpenseRepo, deps.Clock)
	deps.CsvSummaryRenderer = report.NewCsvSummaryRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvSummaryRenderer)

	return deps
}
