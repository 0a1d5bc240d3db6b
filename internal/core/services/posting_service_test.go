package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/buildbooks/construction_gl/internal/apperrors"
	"github.com/buildbooks/construction_gl/internal/core/domain"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/core/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockResolver    *MockResolverService
	mockJournalSvc  *MockJournalService
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.PostingSvcFacade
	companyID       string
	userID          string
	accounts        domain.AccountMap
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockResolver = new(MockResolverService)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewPostingService(suite.mockResolver, suite.mockJournalSvc, suite.mockInvoiceRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.accounts = domain.AccountMap{
		domain.RoleCash:                "acc-cash",
		domain.RoleAccountsReceivable:  "acc-ar",
		domain.RoleAccountsPayable:     "acc-ap",
		domain.RoleSalesTaxPayable:     "acc-tax",
		domain.RoleRetainageReceivable: "acc-ret-recv",
		domain.RoleRetainagePayable:    "acc-ret-pay",
		domain.RoleConstructionRevenue: "acc-rev",
		domain.RoleRepairsMaintenance:  "acc-repairs",
		domain.RoleLaborExpense:        "acc-labor",
		domain.RoleWagesPayable:        "acc-wages",
		domain.RolePayrollTaxPayable:   "acc-payroll-tax",
	}
}

func (suite *PostingServiceTestSuite) receivableInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		InvoiceNumber:   "INV-1001",
		Type:            domain.Receivable,
		InvoiceDate:     time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		Subtotal:        decimal.NewFromInt(1000),
		TaxAmount:       decimal.NewFromInt(100),
		Total:           decimal.NewFromInt(1100),
		RetainageAmount: decimal.NewFromInt(110),
	}
}

// captureRequest records the entry request that reaches the journal service.
func (suite *PostingServiceTestSuite) captureRequest(captured *dto.CreateEntryRequest) {
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}, nil).Once()
}

func lineAmount(lines []dto.CreateEntryLineRequest, accountID string) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.AccountID == accountID {
			debit = debit.Add(l.Debit)
			credit = credit.Add(l.Credit)
		}
	}
	return debit, credit
}

func (suite *PostingServiceTestSuite) TestPostInvoice_ReceivableWithTaxAndRetainage() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(nil).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	entry, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)

	// DR AR for the collectible portion, DR retainage separately.
	arDebit, _ := lineAmount(captured.Lines, "acc-ar")
	suite.True(arDebit.Equal(decimal.NewFromInt(990)))
	retDebit, _ := lineAmount(captured.Lines, "acc-ret-recv")
	suite.True(retDebit.Equal(decimal.NewFromInt(110)))

	// CR revenue for the subtotal and CR tax separately.
	_, revCredit := lineAmount(captured.Lines, "acc-rev")
	suite.True(revCredit.Equal(decimal.NewFromInt(1000)))
	_, taxCredit := lineAmount(captured.Lines, "acc-tax")
	suite.True(taxCredit.Equal(decimal.NewFromInt(100)))

	suite.Require().NotNil(captured.Reference)
	suite.Equal(domain.RefInvoicePosting, captured.Reference.Category)
	suite.Equal(invoice.InvoiceID, captured.Reference.EntityID)
	suite.Equal("2025-04", captured.Reference.Period)
}

func (suite *PostingServiceTestSuite) TestPostInvoice_TaxFoldsWithoutTaxAccount() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()
	invoice.RetainageAmount = decimal.Zero
	delete(suite.accounts, domain.RoleSalesTaxPayable)

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(nil).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.Require().NoError(err)
	// The full gross amount lands in revenue when no tax account resolves.
	_, revCredit := lineAmount(captured.Lines, "acc-rev")
	suite.True(revCredit.Equal(decimal.NewFromInt(1100)))
}

func (suite *PostingServiceTestSuite) TestPostInvoice_MissingARDegradesToNoOp() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()
	delete(suite.accounts, domain.RoleAccountsReceivable)

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(nil).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.NoError(err)
	suite.Nil(entry)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostInvoice_ExplicitGLAccountWins() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()
	invoice.GLAccountID = "acc-custom-rev"
	invoice.RetainageAmount = decimal.Zero

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(nil).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.Require().NoError(err)
	_, revCredit := lineAmount(captured.Lines, "acc-custom-rev")
	suite.True(revCredit.Equal(decimal.NewFromInt(1000)))
}

func (suite *PostingServiceTestSuite) TestPostInvoice_Payable() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()
	invoice.Type = domain.Payable
	invoice.RetainageAmount = decimal.Zero
	invoice.TaxAmount = decimal.Zero
	invoice.Subtotal = decimal.NewFromInt(800)
	invoice.Total = decimal.NewFromInt(800)

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(nil).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.Require().NoError(err)
	expDebit, _ := lineAmount(captured.Lines, "acc-repairs")
	suite.True(expDebit.Equal(decimal.NewFromInt(800)))
	_, apCredit := lineAmount(captured.Lines, "acc-ap")
	suite.True(apCredit.Equal(decimal.NewFromInt(800)))
}

func (suite *PostingServiceTestSuite) TestPostInvoice_RepostedInvoiceStillBooks() {
	ctx := context.Background()
	invoice := suite.receivableInvoice()

	// The invoice record already exists; posting proceeds and leaves
	// double-booking protection to the entry reference index.
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, invoice).Return(apperrors.ErrDuplicate).Once()
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	entry, err := suite.service.PostInvoice(ctx, invoice, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *PostingServiceTestSuite) paymentOn(invoiceID string) domain.Payment {
	return domain.Payment{
		PaymentID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		InvoiceID:   invoiceID,
		PaymentDate: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(990),
		Method:      "check",
	}
}

func (suite *PostingServiceTestSuite) TestPostPayment_ReceivableCashIn() {
	ctx := context.Background()
	payment := suite.paymentOn(uuid.NewString())

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, payment.InvoiceID).
		Return(&domain.Invoice{InvoiceID: payment.InvoiceID, Type: domain.Receivable}, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPaymentToInvoice", ctx, payment.InvoiceID, payment.Amount).Return(nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	entry, err := suite.service.PostPayment(ctx, payment, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
	cashDebit, _ := lineAmount(captured.Lines, "acc-cash")
	suite.True(cashDebit.Equal(decimal.NewFromInt(990)))
	_, arCredit := lineAmount(captured.Lines, "acc-ar")
	suite.True(arCredit.Equal(decimal.NewFromInt(990)))
	suite.Equal("2025-05", captured.Reference.Period)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostPayment_PayableCashOut() {
	ctx := context.Background()
	payment := suite.paymentOn(uuid.NewString())

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, payment.InvoiceID).
		Return(&domain.Invoice{InvoiceID: payment.InvoiceID, Type: domain.Payable}, nil).Once()
	suite.mockInvoiceRepo.On("ApplyPaymentToInvoice", ctx, payment.InvoiceID, payment.Amount).Return(nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostPayment(ctx, payment, suite.userID)

	suite.Require().NoError(err)
	apDebit, _ := lineAmount(captured.Lines, "acc-ap")
	suite.True(apDebit.Equal(decimal.NewFromInt(990)))
	_, cashCredit := lineAmount(captured.Lines, "acc-cash")
	suite.True(cashCredit.Equal(decimal.NewFromInt(990)))
}

func (suite *PostingServiceTestSuite) TestPostPayment_NoInvoiceBooksAsCashReceipt() {
	ctx := context.Background()
	payment := suite.paymentOn("")

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostPayment(ctx, payment, suite.userID)

	suite.Require().NoError(err)
	cashDebit, _ := lineAmount(captured.Lines, "acc-cash")
	suite.True(cashDebit.Equal(decimal.NewFromInt(990)))
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ApplyPaymentToInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostPayrollRun_SplitsWithholding() {
	ctx := context.Background()
	run := domain.PayrollRunSummary{
		PayrollRunID: uuid.NewString(),
		CompanyID:    suite.companyID,
		PeriodEnd:    time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		GrossPay:     decimal.NewFromInt(10000),
		TaxTotal:     decimal.NewFromInt(1500),
		Deductions:   decimal.NewFromInt(500),
		NetPay:       decimal.NewFromInt(8000),
	}

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	var captured dto.CreateEntryRequest
	suite.captureRequest(&captured)

	_, err := suite.service.PostPayrollRun(ctx, run, suite.userID)

	suite.Require().NoError(err)
	laborDebit, _ := lineAmount(captured.Lines, "acc-labor")
	suite.True(laborDebit.Equal(decimal.NewFromInt(10000)))
	_, wagesCredit := lineAmount(captured.Lines, "acc-wages")
	suite.True(wagesCredit.Equal(decimal.NewFromInt(8000)))
	_, withheldCredit := lineAmount(captured.Lines, "acc-payroll-tax")
	suite.True(withheldCredit.Equal(decimal.NewFromInt(2000)))
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
