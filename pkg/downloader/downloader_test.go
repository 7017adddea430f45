package downloader

import (
	"errors"
	"testing"

	"github.com/apkgrab/apkgrab/pkg/config"
)

func TestForApp(t *testing.T) {
	tests := map[string]struct {
		app      config.AppConfig
		wantType string
		wantErr  bool
	}{
		"empty source defaults to apkeep": {
			app:      config.AppConfig{Package: "com.example.app"},
			wantType: "apkeep",
		},
		"explicit apkeep source": {
			app:      config.AppConfig{Package: "com.example.app", Source: SourceApkeep},
			wantType: "apkeep",
		},
		"url source": {
			app:      config.AppConfig{Package: "com.example.app", Source: SourceURL, URL: "https://example.com/a.apk"},
			wantType: "url",
		},
		"url source without url": {
			app:     config.AppConfig{Package: "com.example.app", Source: SourceURL},
			wantErr: true,
		},
		"unknown source": {
			app:     config.AppConfig{Package: "com.example.app", Source: "f-droid"},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorkdir(t)
			dl, err := ForApp(tc.app, w, fakeCreds{}, &fakeRunner{})
			if (err != nil) != tc.wantErr {
				t.Fatalf("ForApp() error = %v, wantErr = %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}

			switch tc.wantType {
			case "apkeep":
				if _, ok := dl.(*Apkeep); !ok {
					t.Errorf("ForApp() = %T, want *Apkeep", dl)
				}
			case "url":
				if _, ok := dl.(*URL); !ok {
					t.Errorf("ForApp() = %T, want *URL", dl)
				}
			}
		})
	}
}

func TestDownloadError(t *testing.T) {
	plain := downloadErrorf("apk not found for %s", "com.example.app")
	if plain.Error() != "apk not found for com.example.app" {
		t.Errorf("Error() = %q", plain.Error())
	}
	if plain.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", plain.Unwrap())
	}

	cause := errors.New("disk full")
	wrapped := wrapDownloadError(cause, "packaging %s", "com.example.app")
	if wrapped.Error() != "packaging com.example.app: disk full" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not expose its cause")
	}

	var dlErr *DownloadError
	if !errors.As(wrapped, &dlErr) {
		t.Error("errors.As failed to match DownloadError")
	}
}
