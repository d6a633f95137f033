package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/config"
	"atlas/internal/model"
	"atlas/internal/server"
)

// 远端地址指向一个必然拒绝连接的端口，全程走降级路径
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: "test",
		},
		Upstream: config.UpstreamConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: 200 * time.Millisecond,
		},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestServerRoutes(t *testing.T) {
	Convey("服务器路由与降级读取", t, func() {
		srv, err := server.New(testConfig())
		So(err, ShouldBeNil)

		do := func(method, path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(method, path, nil)
			srv.Engine().ServeHTTP(w, req)
			return w
		}

		Convey("健康检查", func() {
			So(do(http.MethodGet, "/health").Code, ShouldEqual, http.StatusOK)
			So(do(http.MethodGet, "/ready").Code, ShouldEqual, http.StatusOK)
		})

		Convey("远端不可达时地区列表回落到兜底数据", func() {
			w := do(http.MethodGet, "/api/v1/regions")
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp envelope
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 0)

			var regions []*model.Region
			So(json.Unmarshal(resp.Data, &regions), ShouldBeNil)
			So(len(regions), ShouldBeGreaterThanOrEqualTo, 5)
		})

		Convey("文章详情与版本记录", func() {
			So(do(http.MethodGet, "/api/v1/topics/topic_001").Code, ShouldEqual, http.StatusOK)
			So(do(http.MethodGet, "/api/v1/topics/topic_999").Code, ShouldEqual, http.StatusNotFound)
			So(do(http.MethodGet, "/api/v1/topics/topic_001/versions").Code, ShouldEqual, http.StatusOK)
		})

		Convey("未认证的写操作一律 401", func() {
			So(do(http.MethodPost, "/api/v1/regions").Code, ShouldEqual, http.StatusUnauthorized)
			So(do(http.MethodDelete, "/api/v1/topics/topic_001").Code, ShouldEqual, http.StatusUnauthorized)
			So(do(http.MethodGet, "/api/v1/users").Code, ShouldEqual, http.StatusUnauthorized)
		})
	})
}
