package newsparse

import "strings"

// iranProvinces are province names and their capitals as they appear in
// breadcrumbs of local news sections.
var iranProvinces = []string{
	"آذربایجان شرقی", "آذربایجان غربی", "اردبیل", "اصفهان", "البرز", "ایلام",
	"بوشهر", "تهران", "چهارمحال و بختیاری", "خراسان جنوبی", "خراسان رضوی",
	"خراسان شمالی", "خوزستان", "زنجان", "سمنان", "سیستان و بلوچستان", "فارس",
	"قزوین", "قم", "کردستان", "کرمان", "کرمانشاه", "کهگیلویه و بویراحمد",
	"گلستان", "گیلان", "لرستان", "مازندران", "مرکزی", "هرمزگان", "همدان", "یزد",
	"تبریز", "ارومیه", "مشهد", "شیراز", "اهواز", "کرج", "رشت", "ساری",
	"بندرعباس", "بیرجند", "بجنورد", "سنندج", "خرم‌آباد", "شهرکرد", "یاسوج",
	"زاهدان", "گرگان", "اراک", "کیش", "قشم",
}

// IsIranProvince reports whether s names an Iranian province or a
// provincial capital, optionally prefixed with "استان".
func IsIranProvince(s string) bool {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "استان"))
	if s == "" {
		return false
	}
	for _, p := range iranProvinces {
		if s == p || strings.HasPrefix(s, p+" ") {
			return true
		}
	}
	return false
}

// FirstIsProvince matches when the first token starts with "استان" or
// names a province.
func FirstIsProvince() CategoryPredicate {
	return func(p CategoryPath) bool {
		return strings.HasPrefix(p.First, "استان") || IsIranProvince(p.First)
	}
}
