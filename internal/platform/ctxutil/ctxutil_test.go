package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/user"
)

func TestCallerAnonymousByDefault(t *testing.T) {
	if got := Caller(context.Background()); got != nil {
		t.Fatalf("empty context caller: want=nil got=%+v", got)
	}
	ctx := WithRequestData(context.Background(), &RequestData{Identity: &user.Identity{}})
	if got := Caller(ctx); got != nil {
		t.Fatalf("nil id caller: want=nil got=%+v", got)
	}
}

func TestCallerResolved(t *testing.T) {
	id := &user.Identity{ID: uuid.New(), Username: "ana"}
	ctx := WithRequestData(context.Background(), &RequestData{TokenString: "t", Identity: id})
	if got := Caller(ctx); got != id {
		t.Fatalf("caller: want=%+v got=%+v", id, got)
	}
}

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "tr", RequestID: "rq"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "tr" || td.RequestID != "rq" {
		t.Fatalf("trace data: got=%+v", td)
	}
}
