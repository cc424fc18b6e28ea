package reportdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/internal/middleware"
	"github.com/go-petr/bank-insights/internal/test"
	"github.com/go-petr/bank-insights/pkg/errorspkg"
	"github.com/go-petr/bank-insights/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(service Service) *gin.Engine {
	h := NewHandler(service)

	server := gin.New()
	server.Use(middleware.RequestLogger(zerolog.Nop()))
	server.GET("/reports", h.List)
	server.GET("/reports/:name", h.Run)
	server.POST("/batch", h.Batch)
	server.GET("/audit", h.Audit)

	return server
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	infos := []domain.ReportInfo{
		{Name: "top-customers-by-balance", Description: "Top N customers", Params: []string{"n"}},
		{Name: "most-frequent-customer", Description: "Busiest customer", Params: []string{}},
	}

	service := NewMockService(ctrl)
	service.EXPECT().Reports().Times(1).Return(infos)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	newServer(service).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.ReportInfo
	res := web.Response{Data: &got}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	if diff := cmp.Diff(infos, got); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	top := []domain.CustomerBalance{
		{CustomerID: 2, FirstName: "Alan", LastName: "Turing", TotalBalance: test.Dec("500")},
		{CustomerID: 1, FirstName: "Ada", LastName: "Lovelace", TotalBalance: test.Dec("95.50")},
	}

	testCases := []struct {
		name           string
		path           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(got domain.ReportResult, rows []domain.CustomerBalance)
	}{
		{
			name: "OK",
			path: "/reports/top-customers-by-balance?n=2",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Run(gomock.Any(), gomock.Eq("top-customers-by-balance"), gomock.Eq(domain.ReportParams{N: 2})).
					Times(1).
					Return(domain.ReportResult{Name: "top-customers-by-balance", Count: 2, Rows: top}, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(got domain.ReportResult, rows []domain.CustomerBalance) {
				require.Equal(t, "top-customers-by-balance", got.Name)
				require.Equal(t, 2, got.Count)

				if diff := cmp.Diff(top, rows, test.EquateDecimals); diff != "" {
					t.Errorf("res.Data.Rows mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "Threshold",
			path: "/reports/large-withdrawals-within?threshold=1000.50&days=30",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Run(gomock.Any(), gomock.Eq("large-withdrawals-within"), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, name string, p domain.ReportParams) (domain.ReportResult, error) {
						require.Equal(t, 30, p.Days)
						require.True(t, test.Dec("1000.5").Equal(p.Threshold), "threshold %s", p.Threshold)
						return domain.ReportResult{Name: name, Rows: []domain.LargeWithdrawal{}}, nil
					})
			},
			wantStatusCode: http.StatusOK,
			checkData: func(got domain.ReportResult, rows []domain.CustomerBalance) {
				require.Equal(t, 0, got.Count)
			},
		},
		{
			name: "NegativeDays",
			path: "/reports/accounts-opened-within?days=-1",
			buildStubs: func(service *MockService) {
				service.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Days must be at least 0",
		},
		{
			name: "MalformedThreshold",
			path: "/reports/large-withdrawals-within?threshold=lots&days=30",
			buildStubs: func(service *MockService) {
				service.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Threshold must be a number",
		},
		{
			name: "InvalidParameter",
			path: "/reports/top-customers-by-balance",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Run(gomock.Any(), gomock.Eq("top-customers-by-balance"), gomock.Eq(domain.ReportParams{})).
					Times(1).
					Return(domain.ReportResult{}, fmt.Errorf("%w: n must be at least 1, got 0", domain.ErrInvalidParameter))
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid parameter: n must be at least 1, got 0",
		},
		{
			name: "UnknownReport",
			path: "/reports/balance-sheet",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Run(gomock.Any(), gomock.Eq("balance-sheet"), gomock.Any()).
					Times(1).
					Return(domain.ReportResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, "balance-sheet"))
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      `unknown report: "balance-sheet"`,
		},
		{
			name: "MalformedTable",
			path: "/reports/most-frequent-customer",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Run(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ReportResult{}, fmt.Errorf("%w: accounts.csv line 3", domain.ErrMalformedTable))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			newServer(service).ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var rows []domain.CustomerBalance
			result := domain.ReportResult{Rows: &rows}
			res := web.Response{Data: &result}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
				return
			}

			tc.checkData(result, rows)
		})
	}
}

func TestBatch(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: `{"requests":[{"name":"running-balance","params":{"account_id":7}},{"name":"audit-orphan-accounts"}]}`,
			buildStubs: func(service *MockService) {
				want := []domain.ReportRequest{
					{Name: "running-balance", Params: domain.ReportParams{AccountID: 7}},
					{Name: "audit-orphan-accounts"},
				}
				service.EXPECT().
					RunBatch(gomock.Any(), gomock.Eq(want)).
					Times(1).
					Return([]domain.ReportResult{
						{Name: "running-balance", Rows: []domain.RunningBalance{}},
						{Name: "audit-orphan-accounts", Rows: []domain.OrphanAccount{}},
					}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "EmptyBatch",
			body: `{"requests":[]}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().RunBatch(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Requests must be at least 1",
		},
		{
			name: "NoRequests",
			body: `{}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().RunBatch(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Requests is required",
		},
		{
			name: "UnknownReport",
			body: `{"requests":[{"name":"nope"}]}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RunBatch(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, fmt.Errorf("%w: %q", domain.ErrUnknownReport, "nope"))
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      `unknown report: "nope"`,
		},
		{
			name: "InternalServerError",
			body: `{"requests":[{"name":"most-frequent-customer"}]}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RunBatch(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", bytes.NewReader([]byte(tc.body)))
			newServer(service).ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var results []domain.ReportResult
			res := web.Response{Data: &results}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

			if tc.wantStatusCode != http.StatusOK {
				require.Equal(t, tc.wantError, res.Error)
				return
			}

			require.Len(t, results, 2)
			require.Equal(t, "running-balance", results[0].Name)
			require.Equal(t, "audit-orphan-accounts", results[1].Name)
		})
	}
}

func TestAudit(t *testing.T) {
	findings := domain.AuditReport{
		BalanceMismatches: []domain.BalanceMismatch{
			{AccountID: 10, StoredBalance: test.Dec("100"), CalculatedBalance: test.Dec("80")},
		},
		MissingCustomerData: []domain.MissingCustomerData{
			{CustomerID: 2, Name: "Alan Turing", MissingFields: "Missing ZIP"},
		},
		DuplicateAccounts:         []domain.DuplicateAccounts{},
		InvalidTransactionTypes:   []domain.InvalidTransactionType{},
		NegativeNonCreditBalances: []domain.NegativeNonCreditBalance{},
		NegativeAmounts:           []domain.NegativeAmount{},
		OrphanTransactions:        []domain.OrphanTransaction{},
		OrphanAccounts:            []domain.OrphanAccount{},
	}

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().Audit(gomock.Any()).Times(1).Return(findings, nil)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		newServer(service).ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, strings.Contains(recorder.Body.String(), `"negative_amounts":[]`))

		var got domain.AuditReport
		res := web.Response{Data: &got}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

		if diff := cmp.Diff(findings, got, test.EquateDecimals); diff != "" {
			t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("InternalServerError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().Audit(gomock.Any()).Times(1).Return(domain.AuditReport{}, errorspkg.ErrInternal)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/audit", nil)
		newServer(service).ServeHTTP(recorder, req)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		require.JSONEq(t, fmt.Sprintf(`{"error":%q}`, errorspkg.ErrInternal.Error()), recorder.Body.String())
	})
}
