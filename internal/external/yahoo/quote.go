package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/redis"
)

// quoteSummary is the subset of the quoteSummary response the snapshot needs.
// Yahoo wraps every numeric field as {raw, fmt}; only raw matters here.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryProfile struct {
				Sector string `json:"sector"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				Beta                 rawValue `json:"beta"`
				DividendRate         rawValue `json:"dividendRate"`
				FiveYearAvgDividendYield rawValue `json:"fiveYearAvgDividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				SharesOutstanding rawValue `json:"sharesOutstanding"`
				TrailingEps       rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				TotalRevenue      rawValue `json:"totalRevenue"`
				GrossProfits      rawValue `json:"grossProfits"`
				OperatingMargins  rawValue `json:"operatingMargins"`
				Ebitda            rawValue `json:"ebitda"`
				TotalCash         rawValue `json:"totalCash"`
				TotalDebt         rawValue `json:"totalDebt"`
				OperatingCashflow rawValue `json:"operatingCashflow"`
				FreeCashflow      rawValue `json:"freeCashflow"`
			} `json:"financialData"`
			IncomeStatementHistory struct {
				Statements []struct {
					TotalRevenue    rawValue `json:"totalRevenue"`
					OperatingIncome rawValue `json:"operatingIncome"`
					NetIncome       rawValue `json:"netIncome"`
					InterestExpense rawValue `json:"interestExpense"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
			BalanceSheetHistory struct {
				Statements []struct {
					TotalAssets           rawValue `json:"totalAssets"`
					TotalLiab             rawValue `json:"totalLiab"`
					TotalStockholderEquity rawValue `json:"totalStockholderEquity"`
					Inventory             rawValue `json:"inventory"`
					TotalCurrentAssets    rawValue `json:"totalCurrentAssets"`
					TotalCurrentLiabilities rawValue `json:"totalCurrentLiabilities"`
				} `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
			CashflowStatementHistory struct {
				Statements []struct {
					TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
					CapitalExpenditures              rawValue `json:"capitalExpenditures"`
				} `json:"cashflowStatements"`
			} `json:"cashflowStatementHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

const snapshotModules = "price,summaryProfile,summaryDetail,defaultKeyStatistics,financialData," +
	"incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory"

// Snapshot fetches and assembles the fundamentals snapshot for a ticker.
// Results are cached for a day; statements change quarterly at most.
func (c *Client) Snapshot(ctx context.Context, ticker string) (*contracts.FundamentalsSnapshot, error) {
	ticker = strings.ToUpper(ticker)

	var snapshot contracts.FundamentalsSnapshot
	err := c.cache.GetOrSet(ctx, redis.SnapshotKey(ticker), &snapshot, redis.TTLFundamentals, func() (interface{}, error) {
		return c.fetchSnapshot(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) fetchSnapshot(ctx context.Context, ticker string) (*contracts.FundamentalsSnapshot, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.cfg.QuoteBaseURL, ticker, snapshotModules)

	var summary quoteSummary
	if err := c.httpClient.GetJSON(ctx, url, &summary); err != nil {
		return nil, fmt.Errorf("fetch quote summary %s: %w", ticker, err)
	}
	if e := summary.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("quote summary %s: %s: %s", ticker, e.Code, e.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary %s: empty result", ticker)
	}
	r := summary.QuoteSummary.Result[0]

	if r.Price.RegularMarketPrice.Raw == nil || r.DefaultKeyStatistics.SharesOutstanding.Raw == nil {
		return nil, fmt.Errorf("quote summary %s: missing price or shares outstanding", ticker)
	}

	snapshot := &contracts.FundamentalsSnapshot{
		Ticker:            ticker,
		Sector:            strings.ToLower(r.SummaryProfile.Sector),
		AsOf:              time.Now().UTC(),
		CurrentPrice:      *r.Price.RegularMarketPrice.Raw,
		SharesOutstanding: *r.DefaultKeyStatistics.SharesOutstanding.Raw,
		Beta:              r.SummaryDetail.Beta.Raw,
		Revenue:           r.FinancialData.TotalRevenue.Raw,
		GrossProfit:       r.FinancialData.GrossProfits.Raw,
		EPS:               r.DefaultKeyStatistics.TrailingEps.Raw,
		EBITDA:            r.FinancialData.Ebitda.Raw,
		Cash:              r.FinancialData.TotalCash.Raw,
		TotalDebt:         r.FinancialData.TotalDebt.Raw,
		OperatingCashFlow: r.FinancialData.OperatingCashflow.Raw,
		FreeCashFlow:      r.FinancialData.FreeCashflow.Raw,
		DividendPerShareTTM: r.SummaryDetail.DividendRate.Raw,
	}

	// Latest annual statements fill the line items financialData lacks.
	if stmts := r.IncomeStatementHistory.Statements; len(stmts) > 0 {
		latest := stmts[0]
		snapshot.OperatingIncome = latest.OperatingIncome.Raw
		snapshot.NetIncome = latest.NetIncome.Raw
		snapshot.InterestExpense = absOf(latest.InterestExpense.Raw)

		// Statements arrive newest first; histories are oldest first.
		for i := len(stmts) - 1; i >= 0; i-- {
			if v := stmts[i].TotalRevenue.Raw; v != nil {
				snapshot.RevenueHistory = append(snapshot.RevenueHistory, *v)
			}
			if v := stmts[i].NetIncome.Raw; v != nil {
				snapshot.EarningsHistory = append(snapshot.EarningsHistory, *v)
			}
		}
	}

	if stmts := r.BalanceSheetHistory.Statements; len(stmts) > 0 {
		latest := stmts[0]
		snapshot.TotalAssets = latest.TotalAssets.Raw
		snapshot.TotalLiabilities = latest.TotalLiab.Raw
		snapshot.TotalEquity = latest.TotalStockholderEquity.Raw
		snapshot.Inventory = latest.Inventory.Raw
		snapshot.CurrentAssets = latest.TotalCurrentAssets.Raw
		snapshot.CurrentLiabilities = latest.TotalCurrentLiabilities.Raw
	}

	if stmts := r.CashflowStatementHistory.Statements; len(stmts) > 0 {
		for i := len(stmts) - 1; i >= 0; i-- {
			ocf := stmts[i].TotalCashFromOperatingActivities.Raw
			capex := stmts[i].CapitalExpenditures.Raw
			if ocf == nil {
				continue
			}
			fcf := *ocf
			if capex != nil {
				fcf += *capex // capex arrives negative
			}
			snapshot.FCFHistory = append(snapshot.FCFHistory, fcf)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  snapshot.CurrentPrice,
		"sector": snapshot.Sector,
	}).Debug("Fetched fundamentals snapshot")

	return snapshot, nil
}

func absOf(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	if v < 0 {
		v = -v
	}
	return &v
}
