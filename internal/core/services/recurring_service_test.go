package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/buildbooks/construction_gl/internal/core/domain"
	portssvc "github.com/buildbooks/construction_gl/internal/core/ports/services"
	"github.com/buildbooks/construction_gl/internal/core/services"
	"github.com/buildbooks/construction_gl/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurringServiceTestSuite struct {
	suite.Suite
	mockResolver      *MockResolverService
	mockJournalSvc    *MockJournalService
	mockJournalRepo   *MockJournalRepository
	mockAgingSvc      *MockAgingService
	mockLeaseRepo     *MockLeaseRepository
	mockEquipmentRepo *MockEquipmentRepository
	mockTimeclockRepo *MockTimeclockRepository
	service           portssvc.RecurringSvcFacade
	companyID         string
	userID            string
	accounts          domain.AccountMap
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockResolver = new(MockResolverService)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAgingSvc = new(MockAgingService)
	suite.mockLeaseRepo = new(MockLeaseRepository)
	suite.mockEquipmentRepo = new(MockEquipmentRepository)
	suite.mockTimeclockRepo = new(MockTimeclockRepository)
	suite.service = services.NewRecurringService(
		suite.mockResolver,
		suite.mockJournalSvc,
		suite.mockJournalRepo,
		suite.mockAgingSvc,
		suite.mockLeaseRepo,
		suite.mockEquipmentRepo,
		suite.mockTimeclockRepo,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.accounts = domain.AccountMap{
		domain.RoleRentReceivable:      "acc-rent-recv",
		domain.RoleRentalIncome:        "acc-rent-income",
		domain.RoleDeferredRentRevenue: "acc-deferred-rent",
		domain.RoleDepreciationExpense: "acc-dep-exp",
		domain.RoleAccumDepreciation:   "acc-accum-dep",
		domain.RoleLaborExpense:        "acc-labor",
		domain.RoleWagesPayable:        "acc-wages",
		domain.RoleBadDebtExpense:      "acc-bad-debt",
		domain.RoleAllowanceDoubtful:   "acc-allowance",
	}
}

func (suite *RecurringServiceTestSuite) yearLease(leaseID string) domain.Lease {
	return domain.Lease{
		LeaseID:     leaseID,
		CompanyID:   suite.companyID,
		PropertyID:  "prop-1",
		TenantName:  "Acme Drywall",
		MonthlyRent: decimal.NewFromInt(2500),
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		Active:      true,
	}
}

func (suite *RecurringServiceTestSuite) TestGenerateRentAccruals_BooksEveryLeaseMonth() {
	ctx := context.Background()
	leaseID := uuid.NewString()
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{suite.yearLease(leaseID)}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.MatchedBy(func(refs []domain.EntryReference) bool {
		return len(refs) == 12
	})).Return(map[string]bool{}, nil).Once()

	var createdRefs []string
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateEntryRequest)
			createdRefs = append(createdRefs, req.Reference.String())
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Times(12)

	result, err := suite.service.GenerateRentAccruals(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(12, result.Considered)
	suite.Equal(12, result.Created)
	suite.Equal(0, result.Existing)
	suite.Equal(0, result.Errors)
	suite.Len(createdRefs, 12)
	for month := 1; month <= 12; month++ {
		suite.Contains(createdRefs, fmt.Sprintf("rent:accrual:%s:2025-%02d", leaseID, month))
	}
}

func (suite *RecurringServiceTestSuite) TestGenerateRentAccruals_SecondRunCreatesNothing() {
	ctx := context.Background()
	leaseID := uuid.NewString()
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	existing := make(map[string]bool, 12)
	for month := 1; month <= 12; month++ {
		existing[fmt.Sprintf("rent:accrual:%s:2025-%02d", leaseID, month)] = true
	}

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{suite.yearLease(leaseID)}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(existing, nil).Once()

	result, err := suite.service.GenerateRentAccruals(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(12, result.Considered)
	suite.Equal(12, result.Existing)
	suite.Equal(0, result.Created)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateRentAccruals_AutoRenewExtendsOneTerm() {
	ctx := context.Background()
	lease := suite.yearLease(uuid.NewString())
	lease.AutoRenew = true
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{lease}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.Anything, suite.userID).
		Return(&domain.JournalEntry{}, nil).Times(24)

	result, err := suite.service.GenerateRentAccruals(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(24, result.Considered)
	suite.Equal(24, result.Created)
}

func (suite *RecurringServiceTestSuite) TestGenerateRentAccruals_MissingRolesIsNoOp() {
	ctx := context.Background()
	delete(suite.accounts, domain.RoleRentalIncome)
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()

	result, err := suite.service.GenerateRentAccruals(ctx, suite.companyID, time.Now().UTC(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Considered)
	suite.mockLeaseRepo.AssertNotCalled(suite.T(), "ListActiveLeases", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateRentAccruals_SkipsPrepaidLeases() {
	ctx := context.Background()
	lease := suite.yearLease(uuid.NewString())
	lease.PaidInAdvance = true

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{lease}, nil).Once()

	result, err := suite.service.GenerateRentAccruals(ctx, suite.companyID, time.Now().UTC(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Considered)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateRentRecognition_BooksPrepaidLeaseMonths() {
	ctx := context.Background()
	leaseID := uuid.NewString()
	lease := suite.yearLease(leaseID)
	lease.PaidInAdvance = true
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{lease}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.MatchedBy(func(refs []domain.EntryReference) bool {
		return len(refs) == 12
	})).Return(map[string]bool{}, nil).Once()

	var createdRefs []string
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateEntryRequest)
			createdRefs = append(createdRefs, req.Reference.String())
			suite.Equal("acc-deferred-rent", req.Lines[0].AccountID)
			suite.True(req.Lines[0].Debit.Equal(decimal.NewFromInt(2500)))
			suite.Equal("acc-rent-income", req.Lines[1].AccountID)
			suite.True(req.Lines[1].Credit.Equal(decimal.NewFromInt(2500)))
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Times(12)

	result, err := suite.service.GenerateRentRecognition(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(12, result.Considered)
	suite.Equal(12, result.Created)
	suite.Equal(0, result.Existing)
	suite.Len(createdRefs, 12)
	for month := 1; month <= 12; month++ {
		suite.Contains(createdRefs, fmt.Sprintf("rent:recognition:%s:2025-%02d", leaseID, month))
	}
}

func (suite *RecurringServiceTestSuite) TestGenerateRentRecognition_IgnoresAccrualLeases() {
	ctx := context.Background()
	lease := suite.yearLease(uuid.NewString())

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockLeaseRepo.On("ListActiveLeases", ctx, suite.companyID).
		Return([]domain.Lease{lease}, nil).Once()

	result, err := suite.service.GenerateRentRecognition(ctx, suite.companyID, time.Now().UTC(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Considered)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateRentRecognition_MissingRolesIsNoOp() {
	ctx := context.Background()
	delete(suite.accounts, domain.RoleDeferredRentRevenue)
	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()

	result, err := suite.service.GenerateRentRecognition(ctx, suite.companyID, time.Now().UTC(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Considered)
	suite.mockLeaseRepo.AssertNotCalled(suite.T(), "ListActiveLeases", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateDepreciation_NeverBooksFutureMonths() {
	ctx := context.Background()
	equipmentID := uuid.NewString()
	item := domain.Equipment{
		EquipmentID:      equipmentID,
		CompanyID:        suite.companyID,
		Name:             "Excavator",
		Cost:             decimal.NewFromInt(62000),
		SalvageValue:     decimal.NewFromInt(2000),
		UsefulLifeMonths: 60,
		InServiceDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockEquipmentRepo.On("ListEquipment", ctx, suite.companyID).
		Return([]domain.Equipment{item}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()

	var createdRefs []string
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateEntryRequest)
			createdRefs = append(createdRefs, req.Reference.String())
			// Straight-line charge: (62000 - 2000) / 60.
			suite.True(req.Lines[0].Debit.Equal(decimal.NewFromInt(1000)))
		}).
		Return(&domain.JournalEntry{}, nil).Times(3)

	result, err := suite.service.GenerateDepreciation(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, result.Considered)
	suite.Equal(3, result.Created)
	suite.ElementsMatch([]string{
		"depreciation:" + equipmentID + ":2025-01",
		"depreciation:" + equipmentID + ":2025-02",
		"depreciation:" + equipmentID + ":2025-03",
	}, createdRefs)
}

func (suite *RecurringServiceTestSuite) TestGenerateDepreciation_StopsAtScheduleEnd() {
	ctx := context.Background()
	item := domain.Equipment{
		EquipmentID:      uuid.NewString(),
		CompanyID:        suite.companyID,
		Name:             "Compressor",
		Cost:             decimal.NewFromInt(1200),
		UsefulLifeMonths: 6,
		InServiceDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockEquipmentRepo.On("ListEquipment", ctx, suite.companyID).
		Return([]domain.Equipment{item}, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.Anything, suite.userID).
		Return(&domain.JournalEntry{}, nil).Times(6)

	result, err := suite.service.GenerateDepreciation(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(6, result.Considered)
	suite.Equal(6, result.Created)
}

func (suite *RecurringServiceTestSuite) laborDay(cost int64) domain.TimeclockDay {
	return domain.TimeclockDay{
		CompanyID:  suite.companyID,
		EmployeeID: "emp-7",
		WorkDate:   time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC),
		Hours:      decimal.NewFromInt(8),
		LaborCost:  decimal.NewFromInt(cost),
		ProjectID:  "proj-9",
	}
}

func (suite *RecurringServiceTestSuite) TestGenerateLaborAccruals() {
	ctx := context.Background()
	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)

	days := []domain.TimeclockDay{
		suite.laborDay(320),
		{CompanyID: suite.companyID, EmployeeID: "emp-8", WorkDate: from, Hours: decimal.NewFromInt(4), LaborCost: decimal.NewFromInt(160)},
		{CompanyID: suite.companyID, EmployeeID: "emp-9", WorkDate: from, LaborCost: decimal.Zero}, // zero-cost day is skipped
	}

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockTimeclockRepo.On("ListDays", ctx, suite.companyID, from, to).Return(days, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.MatchedBy(func(refs []domain.EntryReference) bool {
		return len(refs) == 2
	})).Return(map[string]bool{"labor:accrual:emp-8:2025-04-01": true}, nil).Once()
	suite.mockJournalSvc.On("CreatePosted", mock.Anything, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.Reference.String() == "labor:accrual:emp-7:2025-04-03"
	}), suite.userID).Return(&domain.JournalEntry{}, nil).Once()

	result, err := suite.service.GenerateLaborAccruals(ctx, suite.companyID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Considered)
	suite.Equal(1, result.Existing)
	suite.Equal(1, result.Created)
}

func (suite *RecurringServiceTestSuite) TestUpsertLaborAccrual_ReplacesExistingDay() {
	ctx := context.Background()
	day := suite.laborDay(400)
	ref := domain.EntryReference{Category: domain.RefLaborAccrual, EntityID: "emp-7", Period: "2025-04-03"}

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockTimeclockRepo.On("SaveDay", ctx, day).Return(nil).Once()
	suite.mockJournalRepo.On("DeleteEntryByReference", ctx, suite.companyID, ref).Return(nil).Once()
	suite.mockJournalSvc.On("CreatePosted", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.Lines[0].Debit.Equal(decimal.NewFromInt(400)) && req.Reference.String() == ref.String()
	}), suite.userID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	entry, err := suite.service.UpsertLaborAccrual(ctx, day, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestUpsertLaborAccrual_ZeroCostDeletesOnly() {
	ctx := context.Background()
	day := suite.laborDay(0)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockTimeclockRepo.On("SaveDay", ctx, day).Return(nil).Once()
	suite.mockJournalRepo.On("DeleteEntryByReference", ctx, suite.companyID, mock.Anything).Return(nil).Once()

	entry, err := suite.service.UpsertLaborAccrual(ctx, day, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestAdjustBadDebtAllowance_BooksPositiveDelta() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()
	suite.mockAgingSvc.On("RequiredReserveDelta", ctx, suite.companyID, "acc-allowance", asOf).
		Return(decimal.NewFromFloat(250.50), nil).Once()

	var captured dto.CreateEntryRequest
	suite.mockJournalSvc.On("CreatePosted", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	entry, err := suite.service.AdjustBadDebtAllowance(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("allowance:adjustment:"+suite.companyID+":2025-06", captured.Reference.String())
	suite.Equal("acc-bad-debt", captured.Lines[0].AccountID)
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromFloat(250.50)))
	suite.Equal("acc-allowance", captured.Lines[1].AccountID)
	suite.True(captured.Lines[1].Credit.Equal(decimal.NewFromFloat(250.50)))
}

func (suite *RecurringServiceTestSuite) TestAdjustBadDebtAllowance_NegativeDeltaReleases() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()
	suite.mockAgingSvc.On("RequiredReserveDelta", ctx, suite.companyID, "acc-allowance", asOf).
		Return(decimal.NewFromInt(-75), nil).Once()

	var captured dto.CreateEntryRequest
	suite.mockJournalSvc.On("CreatePosted", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.AdjustBadDebtAllowance(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("acc-allowance", captured.Lines[0].AccountID)
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromInt(75)))
	suite.Equal("acc-bad-debt", captured.Lines[1].AccountID)
}

func (suite *RecurringServiceTestSuite) TestAdjustBadDebtAllowance_SkipsWhenAlreadyBooked() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	refKey := "allowance:adjustment:" + suite.companyID + ":2025-06"

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{refKey: true}, nil).Once()

	entry, err := suite.service.AdjustBadDebtAllowance(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockAgingSvc.AssertNotCalled(suite.T(), "RequiredReserveDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestAdjustBadDebtAllowance_ImmaterialDeltaSkipped() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockResolver.On("Resolve", ctx, suite.companyID).Return(suite.accounts, nil).Once()
	suite.mockJournalRepo.On("FindExistingReferences", ctx, suite.companyID, mock.Anything).
		Return(map[string]bool{}, nil).Once()
	suite.mockAgingSvc.On("RequiredReserveDelta", ctx, suite.companyID, "acc-allowance", asOf).
		Return(decimal.NewFromFloat(0.004), nil).Once()

	entry, err := suite.service.AdjustBadDebtAllowance(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreatePosted", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecurringService(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
