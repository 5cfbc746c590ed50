package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/demo-api/internal/handler"
)

var _ = Describe("Handler", func() {
	var h *handler.DemoHandler

	BeforeEach(func() {
		h = handler.NewDemoHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	serve := func(fn http.HandlerFunc, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		fn(w, req)
		return w
	}

	Describe("Root", func() {
		It("should return the welcome message", func() {
			w := serve(h.Root, "/")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(Equal(`{"status_code":200,"response_type":"success","detail":"Welcome to Demo API."}`))
		})

		It("should return identical bodies on repeated calls", func() {
			first := serve(h.Root, "/").Body.String()
			second := serve(h.Root, "/").Body.String()
			Expect(second).To(Equal(first))
		})
	})

	Describe("Demo", func() {
		It("should return the demo message", func() {
			w := serve(h.Demo, "/demo")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal(`{"status_code":200,"response_type":"success","detail":"Demo endpoint"}`))
		})

		It("should ignore query parameters", func() {
			w := serve(h.Demo, "/demo?verbose=true")
			Expect(w.Body.String()).To(Equal(`{"status_code":200,"response_type":"success","detail":"Demo endpoint"}`))
		})
	})

	Describe("NotFound", func() {
		It("should return 404 with a detail body", func() {
			w := serve(h.NotFound, "/unknown")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(Equal(`{"detail":"Not Found"}`))
		})
	})

	Describe("MethodNotAllowed", func() {
		It("should return 405 with a detail body", func() {
			w := serve(h.MethodNotAllowed, "/")

			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(w.Body.String()).To(Equal(`{"detail":"Method Not Allowed"}`))
		})
	})

	Describe("Routes", func() {
		It("should list the routes in registration order", func() {
			routes := h.Routes()

			Expect(routes).To(HaveLen(2))
			Expect(routes[0].Method).To(Equal(http.MethodGet))
			Expect(routes[0].Path).To(Equal("/"))
			Expect(routes[1].Method).To(Equal(http.MethodGet))
			Expect(routes[1].Path).To(Equal("/demo"))
		})

		It("should bind each route to its handler", func() {
			for _, route := range h.Routes() {
				w := serve(route.Handler, route.Path)
				Expect(w.Code).To(Equal(http.StatusOK), route.Name)
			}
		})
	})

	Describe("Success", func() {
		It("should always report success", func() {
			resp := handler.Success("anything")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.ResponseType).To(Equal(handler.ResponseTypeSuccess))
		})
	})
})
