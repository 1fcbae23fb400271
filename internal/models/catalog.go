// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryGenres holds the ten suggested genres per category.
var CategoryGenres = map[Category][]string{
	CategoryTogether: {
		"Acoustic Pop (밝고 경쾌한)", "Cute Whistle (귀여운 휘파람)", "Upbeat Piano (신나는 피아노)",
		"Sunny Guitar (따뜻한 기타)", "Playful Jazz (장난스러운 재즈)", "Bossa Nova (여유로운)",
		"Happy Synth-pop (통통 튀는)", "Funky Rhythm (개구쟁이 느낌)", "Morning Coffee (편안한)", "Disney Musical (뮤지컬 스타일)",
	},
	CategoryGrowth: {
		"Sentimental Folk (감성적인 포크)", "Warm Acoustic (따뜻한 어쿠스틱)", "Soft Piano & Strings (피아노와 현악기)",
		"Nostalgic Indie (추억 돋는 인디)", "Gentle Lullaby (부드러운 자장가)", "Coming of Age Pop (성장 드라마)",
		"Emotional Ballad (감동적인)", "Timeless Melody (시간이 흘러도)", "Family Movie OST (가족 영화 느낌)", "Slow Tempo Rock (잔잔한 락)",
	},
	CategoryAdoption: {
		"Hopeful Pop (희망찬 팝)", "Bright Acoustic (밝은 어쿠스틱)", "Uplifting Cinematic (벅차오르는)",
		"Energetic Rock (에너지 넘치는)", "Friendly Ukulele (다정한 우쿨렐레)", "Optimistic March (행진곡 풍)",
		"Heartwarming Ballad (마음을 울리는)", "Clean Electronic (깔끔한)", "Inspiring Piano (영감을 주는)", "Happy Whistle (행복한 휘파람)",
	},
	CategoryMissing: {
		"Urgent Cinematic (다급한 시네마틱)", "Dramatic Strings (드라마틱한 현악기)", "Emotional Piano (애절한 피아노)",
		"Tense Ambient (긴장감 있는)", "Desperate Ballad (간절한 발라드)", "Fast Tempo Orchestral (빠른 템포)",
		"Heartbeat Rhythm (심장 박동)", "Melancholic Cello (슬픈 첼로)", "Searching Pulse (추적하는 느낌)", "Impactful Rock (강렬한)",
	},
	CategoryRainbow: {
		"Healing Piano (치유의 피아노)", "Ethereal Ambient (몽환적인)", "Heavenly Strings (천국 같은)",
		"Soft Choral (성스러운 코러스)", "Peaceful Nature (평화로운 자연음)", "Sad Waltz (슬픈 왈츠)",
		"Angelic Harp (천사의 하프)", "Slow Emotional Ballad (느린 발라드)", "Spiritual New Age (영적인)", "Quiet Reflection (고요한 회상)",
	},
}

var (
	MusicMoods = []string{
		"Touching & Sad", "Bright & Playful", "Urgent & Desperate", "Warm & Cozy",
		"Nostalgic", "Hopeful", "Pure & Innocent", "Lonely", "Miraculous",
	}
	MusicInstruments = []string{
		"Acoustic Guitar", "Piano", "Strings (Violin/Cello)", "Soft Synth",
		"Ukulele", "Whistling", "Light Percussion", "Orchestra", "Toy Instruments",
	}
	MusicTempos = []string{"Slow & Emotional", "Medium", "Fast & Urgent"}

	VisualLighting = []string{
		"Natural Sunlight", "Warm Golden Hour", "Soft Indoor Window", "Cinematic Moody",
		"Bright Studio", "Dreamy/Ethereal", "Evening Street Light", "Shadowy/Noir",
	}
	VisualAngles = []string{
		"Eye Level (Pet View)", "Low Angle (Ground)", "High Angle (Human View)", "Close-up (Face)",
		"Macro (Nose/Paw)", "Wide Shot (Landscape)", "Over-the-shoulder",
	}
	VisualBackgrounds = []string{
		"Grassy Park", "Cozy Living Room", "Empty Street", "Front Porch",
		"Forest/Nature", "Rainy Window", "Sunset Horizon", "Abstract Blurred", "Backyard", "Studio Backdrop",
	}
	VisualStyles = []string{
		"Realistic Photo 8K", "Disney/Pixar 3D", "Studio Ghibli Anime", "Watercolor Painting",
		"Soft Pastel", "Cinematic Film", "Documentary", "Oil Painting", "Sketch",
	}
)

// CategoryInfo describes one category for pickers.
type CategoryInfo struct {
	ID     Category `json:"id"`
	Label  string   `json:"label"`
	Genres []string `json:"genres"`
}

// Catalog is every enumerated choice the input form offers. Free-form
// values outside these lists are still accepted by the pipeline.
type Catalog struct {
	Categories   []CategoryInfo `json:"categories"`
	AspectRatios []AspectRatio  `json:"aspectRatios"`
	Moods        []string       `json:"moods"`
	Instruments  []string       `json:"instruments"`
	Tempos       []string       `json:"tempos"`
	Lighting     []string       `json:"lighting"`
	Angles       []string       `json:"angles"`
	Backgrounds  []string       `json:"backgrounds"`
	Styles       []string       `json:"styles"`
}

// NewCatalog assembles the option catalog.
func NewCatalog() Catalog {
	cats := make([]CategoryInfo, 0, len(Categories))
	for _, c := range Categories {
		cats = append(cats, CategoryInfo{ID: c, Label: c.Label(), Genres: CategoryGenres[c]})
	}
	return Catalog{
		Categories:   cats,
		AspectRatios: AspectRatios,
		Moods:        MusicMoods,
		Instruments:  MusicInstruments,
		Tempos:       MusicTempos,
		Lighting:     VisualLighting,
		Angles:       VisualAngles,
		Backgrounds:  VisualBackgrounds,
		Styles:       VisualStyles,
	}
}
