package ports

// FormatChecker — синтаксическая проверка номера НДС по правилам страны.
type FormatChecker interface {
	Check(vatNumber string) bool
}
