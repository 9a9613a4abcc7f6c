package directory

import "daleel/internal/domain"

// DefaultCity is preselected when a request names no city.
const DefaultCity = "النجف"

// Governorates offered in the city selector.
var Governorates = []string{
	"النجف", "بغداد", "البصرة", "كربلاء", "بابل", "الديوانية", "ذي قار",
	"ميسان", "واسط", "المثنى", "ديالى", "صلاح الدين", "الأنبار", "كركوك",
	"نينوى", "أربيل", "السليمانية", "دهوك",
}

// QuickFilters are the specialty shortcut buttons; the first one disables
// the filter.
var QuickFilters = []string{domain.SpecialtyAll, "الباطنية", "العيون", "الكسور", "الكلى"}

// Seed is the built-in directory.
var Seed = []domain.DoctorRecord{
	{
		ID:        101,
		Name:      "د. أحمد حسين مرزه",
		Specialty: "الباطنية والقلبية",
		Phone:     "9647869000712",
		ImageURL:  "https://i.ibb.co/V0qvvKSR/image.png",
		City:      "النجف",
		Keywords:  []string{"قلب", "قلبية", "باطنية", "ضغط", "سكري"},
	},
	{
		ID:        102,
		Name:      "د. حسنين الشيباني",
		Specialty: "طب وجراحة العيون",
		Phone:     "9647749496210",
		ImageURL:  "https://i.ibb.co/Lznq55Pn/image.png",
		City:      "النجف",
		Keywords:  []string{"عيون", "نظر", "شبكية", "قرنية", "عدسات"},
	},
	{
		ID:        103,
		Name:      "د. نوار جمعة الماجدي",
		Specialty: "المفاصل والكسور",
		Phone:     "9647813031024",
		ImageURL:  "https://i.ibb.co/4nGrzkQr/image.png",
		City:      "النجف",
		Keywords:  []string{"عظام", "كسور", "مفاصل", "عمود فقري"},
	},
	{
		ID:        104,
		Name:      "د. إحسان تويج",
		Specialty: "جراحة العظام والكسور",
		Phone:     "9647813031024",
		ImageURL:  "https://i.ibb.co/d0ByW2zs/image.png",
		City:      "النجف",
		Keywords:  []string{"جراحة", "عظام", "كسور", "عمليات"},
	},
	{
		ID:        105,
		Name:      "د. مقداد الرضوي",
		Specialty: "جراحة الكلى والمسالك",
		Phone:     "9647869000712",
		ImageURL:  "https://i.ibb.co/tMf2tvkz/image.png",
		City:      "النجف",
		Keywords:  []string{"كلى", "مسالك", "بولية", "حصوات"},
	},
}
