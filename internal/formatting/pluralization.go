package formatting

// Pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func Pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeTrainings возвращает правильное склонение слова "тренировка"
func PluralizeTrainings(count int) string {
	return Pluralize(count, "тренировка", "тренировки", "тренировок")
}

// PluralizePlaces возвращает правильное склонение слова "место"
func PluralizePlaces(count int) string {
	return Pluralize(count, "место", "места", "мест")
}

// PluralizeClients возвращает правильное склонение слова "клиент"
func PluralizeClients(count int) string {
	return Pluralize(count, "клиент", "клиента", "клиентов")
}
