package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/settlement-desk/internal/datasource TradeSource,TradeWriter,TradeRepository
//go:generate mockgen -destination=./mock_submission.go -package=mocks github.com/rxtech-lab/settlement-desk/internal/submission Submitter
//go:generate mockgen -destination=./mock_tokens.go -package=mocks github.com/rxtech-lab/settlement-desk/internal/tokens BalanceProvider
