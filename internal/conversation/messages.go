package conversation

const (
	msgChooseTranslation = "Выберите правильный перевод:\n🇷🇺 %s"
	msgNoWords           = "У вас пока нет слов. Добавьте первое слово ➕."
	msgNoWordsLeft       = "У вас больше нет слов. Добавьте новые слова ➕."
	msgCorrect           = "Отлично!❤\n%s -> %s"
	msgWrong             = "Неправильный ответ! Попробуйте снова. 🇷🇺 %s"
	msgSendNewWord       = "Отправьте новое слово на английском."
	msgSendTranslation   = "Теперь отправьте перевод этого слова."
	msgWordAdded         = "Слово '%s' с переводом '%s' успешно добавлено."
	msgWordDeleted       = "Слово %s удалено."
	msgNothingToDelete   = "Сейчас нет слова для удаления. Начните тренировку: /cards"
	msgProgressEmpty     = "Вы еще не начали изучение слов."
	msgProgress          = "Вы изучаете %d слов.\nПравильных ответов: %d."
	msgSomethingWrong    = "Что-то пошло не так. Попробуйте снова."
	msgStoreFailure      = "Произошла ошибка. Попробуйте позже."
)
