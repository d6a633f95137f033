package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"atlas/internal/codec"
)

func newTestClient(h http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	return New(Options{BaseURL: srv.URL}), srv
}

func TestErrorTaxonomy(t *testing.T) {
	Convey("5xx 响应是 TransportError", t, func() {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := c.ListRegions(context.Background())
		So(err, ShouldNotBeNil)
		So(IsTransport(err), ShouldBeTrue)
	})

	Convey("连接失败是 TransportError", t, func() {
		c := New(Options{BaseURL: "http://127.0.0.1:1"})
		_, err := c.ListRegions(context.Background())
		So(IsTransport(err), ShouldBeTrue)
	})

	Convey("单条查询 404 返回 (nil, nil)，不是错误", t, func() {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		row, err := c.GetRegion(context.Background(), "loc_404")
		So(err, ShouldBeNil)
		So(row, ShouldBeNil)
	})
}

func TestDelete(t *testing.T) {
	Convey("DELETE 204 表示确有删除", t, func(cc C) {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cc.So(r.Method, ShouldEqual, http.MethodDelete)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		removed, err := c.DeleteRegion(context.Background(), "loc_001")
		So(err, ShouldBeNil)
		So(removed, ShouldBeTrue)
	})

	Convey("DELETE 404 表示无行可删，不是错误", t, func() {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		removed, err := c.DeleteRegion(context.Background(), "loc_404")
		So(err, ShouldBeNil)
		So(removed, ShouldBeFalse)
	})
}

func TestRoundTripCalls(t *testing.T) {
	Convey("列表与精确查询", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			rows := []codec.UserRow{{UserID: "user_001", Username: "shanmin"}}
			if u := r.URL.Query().Get("username"); u != "" && u != "shanmin" {
				rows = nil
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(rows)
		})
		c, srv := newTestClient(mux)
		defer srv.Close()

		Convey("命中时取第一条", func() {
			row, err := c.UserByUsername(context.Background(), "shanmin")
			So(err, ShouldBeNil)
			So(row.UserID, ShouldEqual, "user_001")
		})

		Convey("未命中返回 nil", func() {
			row, err := c.UserByUsername(context.Background(), "nobody")
			So(err, ShouldBeNil)
			So(row, ShouldBeNil)
		})
	})

	Convey("创建返回远端写入后的行", t, func() {
		c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var row codec.RegionRow
			_ = json.NewDecoder(r.Body).Decode(&row)
			row.RegionID = "loc_100"
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(&row)
		}))
		defer srv.Close()

		out, err := c.CreateRegion(context.Background(), &codec.RegionRow{RegionName: "丽江"})
		So(err, ShouldBeNil)
		So(out.RegionID, ShouldEqual, "loc_100")
		So(out.RegionName, ShouldEqual, "丽江")
	})
}
