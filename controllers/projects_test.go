package controllers

import "testing"

func TestLogoURL(t *testing.T) {
	if got := logoURL(nil); got != nil {
		t.Errorf("nil logo: got %v, want nil", *got)
	}

	// Without R2 configured presigning fails and the response simply omits
	// the link.
	t.Setenv("R2_ACCOUNT_ID", "")
	t.Setenv("R2_ACCESS_KEY_ID", "")
	t.Setenv("R2_SECRET_ACCESS_KEY", "")
	t.Setenv("R2_BUCKET_NAME", "")
	logo := "projects/storefront-1700000000-abcdefgh.png"
	if got := logoURL(&logo); got != nil {
		t.Errorf("unconfigured storage: got %v, want nil", *got)
	}
}
