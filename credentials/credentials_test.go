package credentials

import "testing"

func TestRequired(t *testing.T) {
	if got := Required("google"); len(got) != 0 {
		t.Errorf("Required(google) = %v, want none", got)
	}
	if got := Required("youdao"); len(got) != 2 {
		t.Errorf("Required(youdao) = %v, want 2 variables", got)
	}
	if got := Required("nonsense"); got != nil {
		t.Errorf("Required(nonsense) = %v, want nil", got)
	}
}

func TestMissing(t *testing.T) {
	t.Setenv("BAIDU_APP_ID", "id")
	t.Setenv("BAIDU_APP_KEY", "")

	missing := Missing("baidu")
	if len(missing) != 1 || missing[0] != "BAIDU_APP_KEY" {
		t.Errorf("Missing(baidu) = %v, want [BAIDU_APP_KEY]", missing)
	}

	t.Setenv("BAIDU_APP_KEY", "key")
	if !Configured("baidu") {
		t.Error("Configured(baidu) = false with both variables set")
	}
	if !Configured("google") {
		t.Error("Configured(google) = false, want true (no requirements)")
	}
}

func TestLoadYoudao(t *testing.T) {
	t.Setenv("YOUDAO_APP_KEY", "key")
	t.Setenv("YOUDAO_APP_SECRET", "secret")

	c, err := LoadYoudao()
	if err != nil {
		t.Fatalf("LoadYoudao: %v", err)
	}
	if c.AppKey != "key" || c.AppSecret != "secret" {
		t.Errorf("LoadYoudao = %+v", c)
	}
}

func TestLoadTencent(t *testing.T) {
	t.Setenv("TENCENT_SECRET_ID", "AKIDx")
	t.Setenv("TENCENT_SECRET_KEY", "sk")

	c, err := LoadTencent()
	if err != nil {
		t.Fatalf("LoadTencent: %v", err)
	}
	if c.SecretID != "AKIDx" || c.SecretKey != "sk" {
		t.Errorf("LoadTencent = %+v", c)
	}
}

func TestMaskKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "****"},
		{"short", "****"},
		{"12345678", "****"},
		{"AKIDabcdefgh1234", "AKID...1234"},
	}
	for _, c := range cases {
		if got := MaskKey(c.in); got != c.want {
			t.Errorf("MaskKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
