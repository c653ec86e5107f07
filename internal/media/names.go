package media

import "time"

// MonthNames are the Turkish month names, January first.
var MonthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// WeekdayNames are the Turkish weekday names, Monday first.
var WeekdayNames = [7]string{
	"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar",
}

// WeekdayIndex maps a time.Weekday to Monday=0 .. Sunday=6.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
