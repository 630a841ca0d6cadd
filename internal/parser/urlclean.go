package parser

import (
	"strings"
)

// packageDomains maps common Android package names to their web
// domains. The reverse-guess below handles everything else.
var packageDomains = map[string]string{
	"com.anthropic.claude":                    "claude.ai",
	"com.google.android.gm":                   "mail.google.com",
	"com.google.android.googlequicksearchbox": "google.com",
	"com.facebook.katana":                     "facebook.com",
	"com.twitter.android":                     "twitter.com",
	"com.instagram.android":                   "instagram.com",
	"com.zhiliaoapp.musically":                "tiktok.com",
	"com.tencent.mm":                          "weixin.qq.com",
}

// CleanURL normalizes URLs stored by the mobile application.
//
// Entries saved from Android apps use android://<cert-hash>@<package>
// instead of a web address. Known packages map to their real domain;
// unknown ones fall back to a domain guessed from the last two package
// segments, or to the raw package name when no sensible guess exists.
// Anything else passes through untouched.
func CleanURL(url string) string {
	if !strings.HasPrefix(url, "android://") {
		return url
	}

	pkg := url[strings.LastIndex(url, "@")+1:]
	pkg = strings.TrimSuffix(pkg, "/")

	if domain, ok := packageDomains[pkg]; ok {
		return domain
	}

	parts := strings.Split(pkg, ".")
	if len(parts) >= 2 {
		domain := parts[len(parts)-2] + "." + parts[len(parts)-1]
		// "com.google.android" style packages would guess a
		// meaningless "google.android".
		if !strings.Contains(domain, "android") {
			return domain
		}
	}

	return pkg
}
