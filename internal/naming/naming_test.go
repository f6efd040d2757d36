package naming

import "testing"

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OrderFlow", "order_flow"},
		{"HTTPServer", "http_server"},
		{"parseURL2", "parse_url2"},
		{"order-worker", "order_worker"},
		{"already_snake", "already_snake"},
		{"A", "a"},
	}
	for _, tt := range tests {
		if got := Snake(tt.in); got != tt.want {
			t.Errorf("Snake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order_flow", "OrderFlow"},
		{"order-worker", "OrderWorker"},
		{"OrderFlow", "OrderFlow"},
		{"fetch", "Fetch"},
		{"__odd__", "Odd"},
	}
	for _, tt := range tests {
		if got := Pascal(tt.in); got != tt.want {
			t.Errorf("Pascal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKebab(t *testing.T) {
	if got := Kebab("OrderFlow"); got != "order-flow" {
		t.Errorf("Kebab = %q", got)
	}
}

func TestValidateProjectName(t *testing.T) {
	for _, good := range []string{"worker", "order-worker", "svc2"} {
		if err := ValidateProjectName(good); err != nil {
			t.Errorf("ValidateProjectName(%q) = %v", good, err)
		}
	}
	for _, bad := range []string{"", "Worker", "order_worker", "-worker", "worker-", "a--b", "2fast"} {
		if err := ValidateProjectName(bad); err == nil {
			t.Errorf("ValidateProjectName(%q) should fail", bad)
		}
	}
}

func TestValidateComponentName(t *testing.T) {
	for _, good := range []string{"Fetch", "OrderFlow", "Agent2"} {
		if err := ValidateComponentName(good); err != nil {
			t.Errorf("ValidateComponentName(%q) = %v", good, err)
		}
	}
	for _, bad := range []string{"", "fetch", "order_flow", "Order Flow", "Func", "Return"} {
		if err := ValidateComponentName(bad); err == nil {
			t.Errorf("ValidateComponentName(%q) should fail", bad)
		}
	}
}
