package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	admin      *model.User
	reporter   *model.User
	submission *model.Submission
}

func (suite *AdminHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.Activity{},
		&model.Submission{},
		&model.Like{},
		&model.Comment{},
		&model.PointAward{},
		&model.Notification{},
		&model.Badge{},
		&model.UserBadge{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	activityRepo := repository.NewActivityRepository(suite.db)
	submissionRepo := repository.NewSubmissionRepository(suite.db)
	notifRepo := repository.NewNotificationRepository(suite.db)
	badgeRepo := repository.NewBadgeRepository(suite.db)

	notificationSvc := service.NewNotificationService(notifRepo, nil)
	moderationSvc := service.NewModerationService(
		suite.db, userRepo, activityRepo, submissionRepo, notifRepo, badgeRepo,
		notificationSvc, nil, nil,
	)
	gate := service.NewAdminGate(userRepo)
	activitySvc := service.NewActivityService(activityRepo)
	badgeSvc := service.NewBadgeService(badgeRepo, userRepo)
	statSvc := service.NewStatService(userRepo, activityRepo, submissionRepo)

	h := NewAdminHandler(gate, moderationSvc, activitySvc, badgeSvc, statSvc)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	admin := suite.router.Group("/api/admin")
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/submissions", h.ListSubmissions)
		admin.POST("/submissions/approve", h.ApproveSubmission)
		admin.POST("/submissions/reject", h.RejectSubmission)
		admin.POST("/activities", h.CreateActivity)
		admin.DELETE("/activities/:id", h.DeleteActivity)
	}

	suite.admin = &model.User{LineUserID: "U-admin", DisplayName: "Admin", EmployeeID: "E0"}
	suite.Require().NoError(suite.db.Create(suite.admin).Error)
	suite.Require().NoError(suite.db.Create(&model.AdminUser{LineUserID: suite.admin.LineUserID}).Error)

	suite.reporter = &model.User{LineUserID: "U-reporter", DisplayName: "Reporter", EmployeeID: "E1"}
	suite.Require().NoError(suite.db.Create(suite.reporter).Error)

	activity := &model.Activity{Title: "Hazard Hunt", Status: model.ActivityStatusActive}
	suite.Require().NoError(suite.db.Create(activity).Error)

	suite.submission = &model.Submission{
		ActivityID:  activity.ID,
		UserID:      suite.reporter.ID,
		Description: "broken railing near the east stairwell",
		Status:      model.SubmissionPending,
	}
	suite.Require().NoError(suite.db.Create(suite.submission).Error)
}

func (suite *AdminHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AdminHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AdminHandlerTestSuite) TestStatsWithoutRequesterIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/admin/stats", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("error", body["status"])
}

func (suite *AdminHandlerTestSuite) TestStatsForNonAdminIsForbidden() {
	w := suite.do(http.MethodGet, "/api/admin/stats?requesterId=U-reporter", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AdminHandlerTestSuite) TestStatsForAdmin() {
	w := suite.do(http.MethodGet, "/api/admin/stats?requesterId=U-admin", nil)
	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			TotalUsers         int64 `json:"total_users"`
			PendingSubmissions int64 `json:"pending_submissions"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("success", body.Status)
	suite.Equal(int64(2), body.Data.TotalUsers)
	suite.Equal(int64(1), body.Data.PendingSubmissions)
}

func (suite *AdminHandlerTestSuite) TestApproveSubmission() {
	w := suite.do(http.MethodPost, "/api/admin/submissions/approve", gin.H{
		"requesterId":  "U-admin",
		"submissionId": suite.submission.ID.String(),
		"score":        15,
	})
	suite.Equal(http.StatusOK, w.Code)

	var sub model.Submission
	suite.Require().NoError(suite.db.First(&sub, "id = ?", suite.submission.ID).Error)
	suite.Equal(model.SubmissionApproved, sub.Status)

	var reporter model.User
	suite.Require().NoError(suite.db.First(&reporter, "id = ?", suite.reporter.ID).Error)
	suite.Equal(15, reporter.TotalScore)
}

func (suite *AdminHandlerTestSuite) TestApproveByNonAdminIsForbidden() {
	w := suite.do(http.MethodPost, "/api/admin/submissions/approve", gin.H{
		"requesterId":  "U-reporter",
		"submissionId": suite.submission.ID.String(),
		"score":        15,
	})
	suite.Equal(http.StatusForbidden, w.Code)

	var sub model.Submission
	suite.Require().NoError(suite.db.First(&sub, "id = ?", suite.submission.ID).Error)
	suite.Equal(model.SubmissionPending, sub.Status)
}

func (suite *AdminHandlerTestSuite) TestApproveMalformedBody() {
	w := suite.do(http.MethodPost, "/api/admin/submissions/approve", gin.H{
		"requesterId": "U-admin",
		"score":       15,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminHandlerTestSuite) TestApproveAlreadyApprovedIsBadRequest() {
	payload := gin.H{
		"requesterId":  "U-admin",
		"submissionId": suite.submission.ID.String(),
		"score":        15,
	}

	w := suite.do(http.MethodPost, "/api/admin/submissions/approve", payload)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/admin/submissions/approve", payload)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AdminHandlerTestSuite) TestRejectSubmission() {
	w := suite.do(http.MethodPost, "/api/admin/submissions/reject", gin.H{
		"requesterId":  "U-admin",
		"submissionId": suite.submission.ID.String(),
	})
	suite.Equal(http.StatusOK, w.Code)

	var sub model.Submission
	suite.Require().NoError(suite.db.First(&sub, "id = ?", suite.submission.ID).Error)
	suite.Equal(model.SubmissionRejected, sub.Status)
}

func (suite *AdminHandlerTestSuite) TestCreateActivity() {
	w := suite.do(http.MethodPost, "/api/admin/activities", gin.H{
		"requesterId": "U-admin",
		"title":       "Cleanup Drive",
	})
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&model.Activity{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *AdminHandlerTestSuite) TestDeleteActivityCascades() {
	url := fmt.Sprintf("/api/admin/activities/%s?requesterId=U-admin", suite.submission.ActivityID)
	w := suite.do(http.MethodDelete, url, nil)
	suite.Equal(http.StatusOK, w.Code)

	var submissions int64
	suite.Require().NoError(suite.db.Model(&model.Submission{}).Count(&submissions).Error)
	suite.Equal(int64(0), submissions)
}

func (suite *AdminHandlerTestSuite) TestListSubmissionsRequiresAdmin() {
	w := suite.do(http.MethodGet, "/api/admin/submissions?status=pending", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/admin/submissions?status=pending&requesterId=U-admin", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func TestAdminHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}
