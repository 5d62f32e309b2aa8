// Package region holds the canonical national regions cards are grouped by
// and the ordering used when a listing is sorted by region.
package region

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	Hokkaido = "北海道"
	Tohoku   = "東北"
	Kanto    = "関東"
	Chubu    = "中部"
	Kinki    = "近畿"
	Chugoku  = "中国"
	Kyushu   = "九州"
)

// Order is a ranking of region names; earlier names sort first.
type Order []string

// DefaultOrder runs north to south.
var DefaultOrder = Order{Hokkaido, Tohoku, Kanto, Chubu, Kinki, Chugoku, Kyushu}

// Rank returns the position of r in the order. Regions that are not listed,
// and cards without a region, rank len(o) so they sort last.
func (o Order) Rank(r *string) int {
	if r == nil {
		return len(o)
	}
	for i, name := range o {
		if name == *r {
			return i
		}
	}
	return len(o)
}

// ParseList splits a comma separated list, trimming blanks and dropping
// empty entries.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Shikoku is folded into Chugoku and Okinawa into Kyushu.
var prefectureRegions = map[string]string{
	"北海道": Hokkaido,

	"青森県": Tohoku, "岩手県": Tohoku, "宮城県": Tohoku,
	"秋田県": Tohoku, "山形県": Tohoku, "福島県": Tohoku,

	"東京都": Kanto, "茨城県": Kanto, "栃木県": Kanto, "群馬県": Kanto,
	"埼玉県": Kanto, "千葉県": Kanto, "神奈川県": Kanto,

	"新潟県": Chubu, "富山県": Chubu, "石川県": Chubu, "福井県": Chubu,
	"山梨県": Chubu, "長野県": Chubu, "岐阜県": Chubu, "静岡県": Chubu,
	"愛知県": Chubu,

	"京都府": Kinki, "京都": Kinki, "大阪府": Kinki, "三重県": Kinki,
	"滋賀県": Kinki, "兵庫県": Kinki, "奈良県": Kinki, "和歌山県": Kinki,

	"鳥取県": Chugoku, "島根県": Chugoku, "岡山県": Chugoku,
	"広島県": Chugoku, "山口県": Chugoku,
	"徳島県": Chugoku, "香川県": Chugoku, "愛媛県": Chugoku, "高知県": Chugoku,

	"福岡県": Kyushu, "佐賀県": Kyushu, "長崎県": Kyushu, "大分県": Kyushu,
	"熊本県": Kyushu, "宮崎県": Kyushu, "鹿児島県": Kyushu, "沖縄県": Kyushu,
}

var prefectures = func() []string {
	keys := make([]string, 0, len(prefectureRegions))
	for k := range prefectureRegions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// FromAddress infers a card's region from a Japanese postal address. The
// longest prefecture name contained in the address wins, so "東京都" is not
// mistaken for the short form "京都".
func FromAddress(address string) (string, bool) {
	if address == "" {
		return "", false
	}

	best := ""
	for _, p := range prefectures {
		if strings.Contains(address, p) && utf8.RuneCountInString(p) > utf8.RuneCountInString(best) {
			best = p
		}
	}
	if best == "" {
		return "", false
	}
	return prefectureRegions[best], true
}
