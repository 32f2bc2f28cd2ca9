package app

import (
	"net/http"

	"github.com/fieldkeep/fieldkeep/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Health
	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Session
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", deps.AuthHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/session", deps.AuthHandler.CurrentSession).Methods("GET")
	r.HandleFunc("/api/navigation", deps.AuthHandler.Navigation).Methods("GET")

	// User management (admin only, enforced by the access policy)
	r.HandleFunc("/api/users", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/users", deps.UserHandler.GetUsers).Methods("GET")
	r.HandleFunc("/api/users/{userUid}", deps.UserHandler.GetUser).Methods("GET")
	r.HandleFunc("/api/users/{userUid}", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/users/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Clients
	r.HandleFunc("/api/clients", deps.ClientHandler.CreateClient).Methods("POST")
	r.HandleFunc("/api/clients", deps.ClientHandler.GetClients).Methods("GET")
	r.HandleFunc("/api/clients/{clientUid}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/clients/{clientUid}", deps.ClientHandler.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/clients/{clientUid}", deps.ClientHandler.DeleteClient).Methods("DELETE")

	// Tickets
	r.HandleFunc("/api/tickets", deps.TicketHandler.CreateTicket).Methods("POST")
	r.HandleFunc("/api/tickets", deps.TicketHandler.GetTickets).Methods("GET")
	r.HandleFunc("/api/tickets/{ticketUid}", deps.TicketHandler.GetTicket).Methods("GET")
	r.HandleFunc("/api/tickets/{ticketUid}", deps.TicketHandler.UpdateTicket).Methods("PUT")
	r.HandleFunc("/api/tickets/{ticketUid}", deps.TicketHandler.DeleteTicket).Methods("DELETE")

	// Quotations
	r.HandleFunc("/api/quotations", deps.QuotationHandler.CreateQuotation).Methods("POST")
	r.HandleFunc("/api/quotations", deps.QuotationHandler.GetQuotations).Methods("GET")
	r.HandleFunc("/api/quotations/{quotationUid}", deps.QuotationHandler.GetQuotation).Methods("GET")
	r.HandleFunc("/api/quotations/{quotationUid}", deps.QuotationHandler.UpdateQuotation).Methods("PUT")
	r.HandleFunc("/api/quotations/{quotationUid}", deps.QuotationHandler.DeleteQuotation).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.GetExpenses).Methods("GET")
	r.HandleFunc("/api/expenses/{expenseUid}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expenses/{expenseUid}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/expenses/{expenseUid}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Rate cards
	r.HandleFunc("/api/ratecards", deps.RateCardHandler.CreateRateCard).Methods("POST")
	r.HandleFunc("/api/ratecards", deps.RateCardHandler.GetRateCards).Methods("GET")
	r.HandleFunc("/api/ratecards/{rateCardUid}", deps.RateCardHandler.GetRateCard).Methods("GET")
	r.HandleFunc("/api/ratecards/{rateCardUid}", deps.RateCardHandler.UpdateRateCard).Methods("PUT")
	r.HandleFunc("/api/ratecards/{rateCardUid}", deps.RateCardHandler.DeleteRateCard).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/reports/summary", deps.ReportHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/reports/series", deps.ReportHandler.GetSeries).Methods("GET")
}
