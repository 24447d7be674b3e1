package workspaceanalytics_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/eventlens/backend/internal/models"
	"github.com/eventlens/backend/internal/workspaceanalytics"
	"github.com/eventlens/backend/pkg/response"
)

func analyticsRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := workspaceanalytics.NewService(store, nil, workspaceanalytics.WithNow(fixedClock))
	h := workspaceanalytics.NewHandler(svc, nil)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestWorkspaceAnalyticsHandler(t *testing.T) {
	Convey("Given a mounted workspace analytics route", t, func() {
		workspaceID := uuid.New()
		memberID := uuid.New()
		store := &fakeStore{
			ws: &models.Workspace{
				ID:        workspaceID,
				Name:      "Launch Crew",
				EventName: "DevConf",
				CreatedAt: fixedNow.Add(-24 * time.Hour),
			},
			members:   []models.TeamMember{member(memberID, "Alice", "LEAD", models.MemberActive)},
			memberIDs: map[uuid.UUID]bool{memberID: true},
		}
		router := analyticsRouter(store)

		get := func(path string) (*httptest.ResponseRecorder, response.Body) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(rec, req)
			var body response.Body
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			return rec, body
		}

		Convey("When a member requests the report", func() {
			rec, body := get("/api/v1/workspaces/" + workspaceID.String() + "/analytics?user_id=" + memberID.String())
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(body.Success, ShouldBeTrue)

			data, ok := body.Data.(map[string]interface{})
			So(ok, ShouldBeTrue)
			So(data["workspace_name"], ShouldEqual, "Launch Crew")
			So(data["health_indicators"], ShouldNotBeNil)
		})

		Convey("When a non-member requests the report it is 403", func() {
			rec, body := get("/api/v1/workspaces/" + workspaceID.String() + "/analytics?user_id=" + uuid.NewString())
			So(rec.Code, ShouldEqual, http.StatusForbidden)
			So(body.Success, ShouldBeFalse)
			So(body.Error, ShouldNotBeBlank)
		})

		Convey("When the workspace does not exist it is 404", func() {
			store.memberIDs[memberID] = true
			rec, _ := get("/api/v1/workspaces/" + uuid.NewString() + "/analytics?user_id=" + memberID.String())
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the workspace id is not a uuid it is 400", func() {
			rec, _ := get("/api/v1/workspaces/not-a-uuid/analytics?user_id=" + memberID.String())
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When user_id is missing it is 400", func() {
			rec, _ := get("/api/v1/workspaces/" + workspaceID.String() + "/analytics")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
