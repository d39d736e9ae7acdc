// Package controllers 提供传输层 Handler，负责处理外部请求并调用业务层。
package controllers

import (
	"context"
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-greeting/internal/services"
	"github.com/bionicotaku/lingo-services-greeting/internal/views"

	"github.com/go-kratos/kratos/v2/encoding"
	kjson "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
)

const contentTypeJSON = "application/json"

// GreeterHandler 是唯一的 HTTP Handler：忽略请求的方法、路径、Header 与 Body，
// 始终返回固定的 Greeting JSON。
type GreeterHandler struct {
	uc    *services.GreeterUsecase
	codec encoding.Codec
	log   *log.Helper
}

// NewGreeterHandler 构造一个由 GreeterUsecase 支撑的 Handler。
func NewGreeterHandler(uc *services.GreeterUsecase, logger log.Logger) *GreeterHandler {
	return &GreeterHandler{
		uc:    uc,
		codec: encoding.GetCodec(kjson.Name),
		log:   log.NewHelper(log.With(logger, "module", "controllers/greeter")),
	}
}

// Handler 返回包裹了中间件链的 http.Handler。
//
// Kratos 仅对生成代码注册的路由执行 server middleware，
// 因此这里手动构建 middleware.Chain 并在每个请求上执行。
func (h *GreeterHandler) Handler(ms ...middleware.Middleware) stdhttp.Handler {
	endpoint := middleware.Chain(ms...)(h.greet)
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h.serve(endpoint, w, r)
	})
}

// ServeHTTP 在无中间件的情况下直接响应。
func (h *GreeterHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	h.serve(h.greet, w, r)
}

func (h *GreeterHandler) greet(ctx context.Context, _ interface{}) (interface{}, error) {
	return views.NewGreetingReply(h.uc.Greet(ctx)), nil
}

func (h *GreeterHandler) serve(endpoint middleware.Handler, w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()
	reply, err := endpoint(ctx, nil)
	if err != nil {
		// 只可能来自 recovery 等中间件；固定载荷本身不会失败。
		w.WriteHeader(int(errors.FromError(err).Code))
		return
	}

	body, err := h.codec.Marshal(reply)
	if err != nil {
		h.log.WithContext(ctx).Errorf("marshal greeting: %v", err)
		w.WriteHeader(stdhttp.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(stdhttp.StatusOK)
	if _, err := w.Write(body); err != nil {
		// 客户端中途断开，连接由 net/http 丢弃。
		h.log.WithContext(ctx).Debugf("write greeting: %v", err)
	}
}
