package service

import (
	"context"
	"testing"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type BadgeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service BadgeService
	user    *model.User
}

func (suite *BadgeServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&model.User{}, &model.Badge{}, &model.UserBadge{})
	suite.Require().NoError(err)

	suite.service = NewBadgeService(
		repository.NewBadgeRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	suite.user = &model.User{LineUserID: "U1", DisplayName: "Reporter", EmployeeID: "E1"}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
}

func (suite *BadgeServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BadgeServiceTestSuite) TestCreateBadge() {
	badge, err := suite.service.Create(context.Background(), CreateBadgeInput{
		Code: "streak-7",
		Name: "Week Streak",
	})
	suite.Require().NoError(err)
	suite.Equal("streak-7", badge.Code)
}

func (suite *BadgeServiceTestSuite) TestCreateBadgeDuplicateCode() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, CreateBadgeInput{Code: "streak-7", Name: "Week Streak"})
	suite.Require().NoError(err)

	_, err = suite.service.Create(ctx, CreateBadgeInput{Code: "streak-7", Name: "Another"})
	suite.ErrorIs(err, apperror.ErrConflict)
}

func (suite *BadgeServiceTestSuite) TestCreateBadgeRequiresCodeAndName() {
	_, err := suite.service.Create(context.Background(), CreateBadgeInput{Code: " ", Name: "X"})
	suite.ErrorIs(err, apperror.ErrValidation)
}

func (suite *BadgeServiceTestSuite) TestAwardIsIdempotent() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, CreateBadgeInput{Code: "streak-7", Name: "Week Streak"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Award(ctx, "streak-7", suite.user.LineUserID))
	suite.Require().NoError(suite.service.Award(ctx, "streak-7", suite.user.LineUserID))

	earned, err := suite.service.ListForUser(ctx, suite.user.LineUserID)
	suite.Require().NoError(err)
	suite.Len(earned, 1)
}

func (suite *BadgeServiceTestSuite) TestAwardUnknownBadge() {
	err := suite.service.Award(context.Background(), "missing", suite.user.LineUserID)
	suite.ErrorIs(err, apperror.ErrNotFound)
}

func (suite *BadgeServiceTestSuite) TestAwardUnknownUser() {
	_, err := suite.service.Create(context.Background(), CreateBadgeInput{Code: "streak-7", Name: "Week Streak"})
	suite.Require().NoError(err)

	err = suite.service.Award(context.Background(), "streak-7", "nobody")
	suite.ErrorIs(err, apperror.ErrNotFound)
}

func TestBadgeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BadgeServiceTestSuite))
}
