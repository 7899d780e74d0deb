package service

import (
	"context"
	"testing"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type EngagementServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	service    EngagementService
	owner      *model.User
	actor      *model.User
	submission *model.Submission
}

func (suite *EngagementServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&model.User{},
		&model.Activity{},
		&model.Submission{},
		&model.Like{},
		&model.Comment{},
		&model.PointAward{},
		&model.Notification{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	submissionRepo := repository.NewSubmissionRepository(suite.db)
	engagementRepo := repository.NewEngagementRepository(suite.db)
	notifRepo := repository.NewNotificationRepository(suite.db)

	suite.service = NewEngagementService(
		suite.db, userRepo, submissionRepo, engagementRepo, notifRepo,
		NewNotificationService(notifRepo, nil),
	)

	suite.owner = &model.User{LineUserID: "U-owner", DisplayName: "Owner", EmployeeID: "E1"}
	suite.Require().NoError(suite.db.Create(suite.owner).Error)
	suite.actor = &model.User{LineUserID: "U-actor", DisplayName: "Actor", EmployeeID: "E2"}
	suite.Require().NoError(suite.db.Create(suite.actor).Error)

	activity := &model.Activity{Title: "Hazard Hunt", Status: model.ActivityStatusActive}
	suite.Require().NoError(suite.db.Create(activity).Error)

	suite.submission = &model.Submission{
		ActivityID:  activity.ID,
		UserID:      suite.owner.ID,
		Description: "broken railing near the east stairwell",
		Status:      model.SubmissionApproved,
	}
	suite.Require().NoError(suite.db.Create(suite.submission).Error)
}

func (suite *EngagementServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EngagementServiceTestSuite) ownerScore() int {
	var user model.User
	suite.Require().NoError(suite.db.First(&user, "id = ?", suite.owner.ID).Error)
	return user.TotalScore
}

func (suite *EngagementServiceTestSuite) notificationCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&model.Notification{}).Count(&count).Error)
	return count
}

func (suite *EngagementServiceTestSuite) TestLikeAwardsOwnerOnce() {
	result, err := suite.service.ToggleLike(context.Background(), suite.submission.ID, suite.actor.LineUserID)
	suite.Require().NoError(err)
	suite.Equal(likeStatusLiked, result.Status)
	suite.Equal(int64(1), result.LikeCount)
	suite.Equal(1, suite.ownerScore())
	suite.Equal(int64(1), suite.notificationCount())
}

func (suite *EngagementServiceTestSuite) TestLikeUnlikeLikePaysOnce() {
	ctx := context.Background()

	_, err := suite.service.ToggleLike(ctx, suite.submission.ID, suite.actor.LineUserID)
	suite.Require().NoError(err)

	result, err := suite.service.ToggleLike(ctx, suite.submission.ID, suite.actor.LineUserID)
	suite.Require().NoError(err)
	suite.Equal(likeStatusUnliked, result.Status)
	suite.Equal(int64(0), result.LikeCount)

	result, err = suite.service.ToggleLike(ctx, suite.submission.ID, suite.actor.LineUserID)
	suite.Require().NoError(err)
	suite.Equal(likeStatusLiked, result.Status)

	// Unliking never claws the point back, and re-liking never pays again.
	suite.Equal(1, suite.ownerScore())
	suite.Equal(int64(1), suite.notificationCount())
}

func (suite *EngagementServiceTestSuite) TestSelfLikeScoresNothing() {
	result, err := suite.service.ToggleLike(context.Background(), suite.submission.ID, suite.owner.LineUserID)
	suite.Require().NoError(err)
	suite.Equal(likeStatusLiked, result.Status)
	suite.Equal(0, suite.ownerScore())
	suite.Equal(int64(0), suite.notificationCount())
}

func (suite *EngagementServiceTestSuite) TestLikeUnknownSubmission() {
	_, err := suite.service.ToggleLike(context.Background(), uuid.New(), suite.actor.LineUserID)
	suite.ErrorIs(err, apperror.ErrNotFound)
}

func (suite *EngagementServiceTestSuite) TestFirstCommentAwardsOwner() {
	comment, err := suite.service.AddComment(context.Background(), suite.submission.ID, suite.actor.LineUserID, "nice catch")
	suite.Require().NoError(err)
	suite.Equal("nice catch", comment.Text)
	suite.Equal(suite.actor.ID, comment.UserID)
	suite.Equal(1, suite.ownerScore())
	suite.Equal(int64(1), suite.notificationCount())
}

func (suite *EngagementServiceTestSuite) TestSecondCommentIsFree() {
	ctx := context.Background()

	_, err := suite.service.AddComment(ctx, suite.submission.ID, suite.actor.LineUserID, "nice catch")
	suite.Require().NoError(err)
	_, err = suite.service.AddComment(ctx, suite.submission.ID, suite.actor.LineUserID, "following up on this")
	suite.Require().NoError(err)

	var comments int64
	suite.Require().NoError(suite.db.Model(&model.Comment{}).Count(&comments).Error)
	suite.Equal(int64(2), comments)
	suite.Equal(1, suite.ownerScore())
}

func (suite *EngagementServiceTestSuite) TestCommentAfterLikeStillPays() {
	ctx := context.Background()

	_, err := suite.service.ToggleLike(ctx, suite.submission.ID, suite.actor.LineUserID)
	suite.Require().NoError(err)
	_, err = suite.service.AddComment(ctx, suite.submission.ID, suite.actor.LineUserID, "nice catch")
	suite.Require().NoError(err)

	// Like and comment are separate award kinds.
	suite.Equal(2, suite.ownerScore())
}

func (suite *EngagementServiceTestSuite) TestSelfCommentScoresNothing() {
	_, err := suite.service.AddComment(context.Background(), suite.submission.ID, suite.owner.LineUserID, "my own note")
	suite.Require().NoError(err)
	suite.Equal(0, suite.ownerScore())
}

func (suite *EngagementServiceTestSuite) TestCommentRequiresText() {
	_, err := suite.service.AddComment(context.Background(), suite.submission.ID, suite.actor.LineUserID, "  ")
	suite.ErrorIs(err, apperror.ErrValidation)
}

func (suite *EngagementServiceTestSuite) TestCommentSanitizesMarkup() {
	comment, err := suite.service.AddComment(context.Background(), suite.submission.ID, suite.actor.LineUserID,
		"<b>bold</b> claim")
	suite.Require().NoError(err)
	suite.Equal("bold claim", comment.Text)
}

func TestEngagementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}
