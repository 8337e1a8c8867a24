package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, m1, m2).ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seenHeader, seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get(interceptors.HeaderRequestID)
		seenCtxID, _ = r.Context().Value(interceptors.CtxRequestID).(string)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get(interceptors.HeaderRequestID)
	require.Len(t, respID, 36)
	require.Equal(t, respID, seenHeader)
	require.Equal(t, respID, seenCtxID)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"
	var seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtxID, _ = r.Context().Value(interceptors.CtxRequestID).(string)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set(interceptors.HeaderRequestID, given)
	Chain(h, RequestID()).ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get(interceptors.HeaderRequestID))
	require.Equal(t, given, seenCtxID)
}

func TestAuthBearer_PopulatesContext(t *testing.T) {
	var token string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ = r.Context().Value(interceptors.CtxAuthToken).(string)
		w.WriteHeader(http.StatusOK)
	})
	chain := Chain(h, AuthBearer())

	req := makeReq("/auth")
	req.Header.Set("Authorization", "Bearer test-token-123")
	chain.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "test-token-123", token)

	token = ""
	req = makeReq("/auth2")
	req.Header.Set("Authorization", "Basic aaa")
	chain.ServeHTTP(httptest.NewRecorder(), req)
	require.Empty(t, token)

	req = makeReq("/auth3")
	req.Header.Set("Authorization", "Bearer   ")
	chain.ServeHTTP(httptest.NewRecorder(), req)
	require.Empty(t, token)
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool
	var left time.Duration

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		hasDeadline = ok
		if ok {
			left = time.Until(dl)
		}
		w.WriteHeader(http.StatusOK)
	})

	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq("/timeout"))

	require.True(t, hasDeadline)
	require.Greater(t, left, time.Duration(0))
}

func TestTimeout_KeepsEarlierDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		childDL, _ = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := makeReq("/timeout2").WithContext(parent)

	Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), req)

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Chain(panicHandler, Recover()).ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.NotEmpty(t, env.Error.Message)
}

func TestTimeout_CapsLaterDeadline(t *testing.T) {
	var left time.Duration

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, _ := r.Context().Deadline()
		left = time.Until(dl)
		w.WriteHeader(http.StatusOK)
	})

	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq("/timeout3").WithContext(parent))

	require.LessOrEqual(t, left, 50*time.Millisecond)
}

func TestRecover_LogsRequestIDAndStack(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	// Recover стоит снаружи Logging: логгер берётся из контекста сервера.
	req := makeReq("/panic2")
	req = req.WithContext(log.Into(req.Context(), logger))
	req.Header.Set(interceptors.HeaderRequestID, "rid-panic")
	Chain(panicHandler, Recover(), RequestID(), Logging(logger)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "rid-panic", env.Error.RequestID)
	require.NotContains(t, rr.Body.String(), "boom")

	require.Equal(t, "panic", h.lastMsg)
	require.Equal(t, slog.LevelError, h.lastLvl)
	require.Equal(t, "rid-panic", h.attrs["request_id"])
	require.Equal(t, "boom", h.attrs["reason"])
	require.NotEmpty(t, h.attrs["stack"])
}

func TestRecover_KeepsStartedResponse(t *testing.T) {
	partial := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("part"))
		panic("late")
	})

	rr := httptest.NewRecorder()
	Chain(partial, Recover()).ServeHTTP(rr, makeReq("/panic3"))

	require.Equal(t, http.StatusAccepted, rr.Code)
	require.Equal(t, "part", rr.Body.String())
}

func TestRecover_RethrowsAbortHandler(t *testing.T) {
	abort := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Chain(abort, Recover()).ServeHTTP(httptest.NewRecorder(), makeReq("/abort"))
	})
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Без WriteHeader статус должен стать 200 после Write.
		_, _ = w.Write([]byte("0123456789"))
	})

	// RequestID до Logging, чтобы id попал в attrs лога.
	handler := Chain(final, RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set(interceptors.HeaderRequestID, rid)
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	require.Equal(t, http.MethodGet, h.attrs["method"])
	require.Equal(t, "/log", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.EqualValues(t, 10, h.attrs["bytes"])
	require.Equal(t, rid, h.attrs["request_id"])

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

func TestLogging_ServerErrorAtErrorLevel(t *testing.T) {
	h := &capHandler{}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	Chain(final, Logging(slog.New(h))).ServeHTTP(httptest.NewRecorder(), makeReq("/fail"))

	require.Equal(t, slog.LevelError, h.lastLvl)
	require.EqualValues(t, http.StatusBadGateway, h.attrs["status"])
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	sw := newStatusWriter(httptest.NewRecorder())

	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}

type gateWaiter struct{ gate chan struct{} }

func (g gateWaiter) WaitHydrated(ctx context.Context) error {
	select {
	case <-g.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestHydrated_WaitsForSession(t *testing.T) {
	g := gateWaiter{gate: make(chan struct{})}
	called := make(chan struct{})

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(called)
	}), Hydrated(g, time.Second))

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(httptest.NewRecorder(), makeReq("/me"))
		close(done)
	}()

	select {
	case <-called:
		t.Fatal("handler ran before hydration")
	case <-time.After(30 * time.Millisecond):
	}

	close(g.gate)
	<-done
	<-called
}

func TestHydrated_GivesUpAfterDeadline(t *testing.T) {
	g := gateWaiter{gate: make(chan struct{})}
	var called bool

	Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.NoError(t, r.Context().Err())
	}), Hydrated(g, 20*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq("/me"))

	require.True(t, called)
}
