package i18n

import (
	"fmt"
	"time"
)

// MsgStart greets a user on /start.
func MsgStart(lang Lang, firstName string) string {
	switch lang {
	case RU:
		return fmt.Sprintf("👋 Привет, %s!\n\n"+
			"Я ИИ-ассистент. Просто напишите мне вопрос.\n\n"+
			"/help — список команд\n"+
			"/subscribe — премиум-доступ", firstName)
	case ES:
		return fmt.Sprintf("👋 ¡Hola, %s!\n\n"+
			"Soy un asistente de IA. Escríbeme cualquier pregunta.\n\n"+
			"/help — lista de comandos\n"+
			"/subscribe — acceso premium", firstName)
	default:
		return fmt.Sprintf("👋 Hi, %s!\n\n"+
			"I'm an AI assistant. Just send me a question.\n\n"+
			"/help — list commands\n"+
			"/subscribe — premium access", firstName)
	}
}

// MsgHelp lists the user commands.
func MsgHelp(lang Lang) string {
	switch lang {
	case RU:
		return "<b>Команды</b>\n\n" +
			"/start — приветствие\n" +
			"/help — эта справка\n" +
			"/subscribe — купить премиум\n" +
			"/status — тариф и лимиты\n" +
			"/model — выбрать модель\n" +
			"/clear — очистить историю\n\n" +
			"Премиум открывает голосовые сообщения и анализ фото."
	case ES:
		return "<b>Comandos</b>\n\n" +
			"/start — saludo\n" +
			"/help — esta ayuda\n" +
			"/subscribe — comprar premium\n" +
			"/status — plan y límites\n" +
			"/model — elegir modelo\n" +
			"/clear — borrar historial\n\n" +
			"Premium desbloquea mensajes de voz y análisis de fotos."
	default:
		return "<b>Commands</b>\n\n" +
			"/start — greeting\n" +
			"/help — this help\n" +
			"/subscribe — buy premium\n" +
			"/status — plan and limits\n" +
			"/model — pick a model\n" +
			"/clear — wipe history\n\n" +
			"Premium unlocks voice messages and photo analysis."
	}
}

// MsgRateLimited tells the user the hourly ceiling is hit.
func MsgRateLimited(lang Lang, current, ceiling int, retryAfter time.Duration, premium bool) string {
	wait := formatWait(lang, retryAfter)

	var base string
	switch lang {
	case RU:
		base = fmt.Sprintf("⏳ <b>Лимит сообщений исчерпан</b>\n\n"+
			"Использовано %d из %d за последний час.\n"+
			"Попробуйте снова через %s.", current, ceiling, wait)
		if !premium {
			base += "\n\n💎 /subscribe — премиум с лимитом в 50 раз выше"
		}
	case ES:
		base = fmt.Sprintf("⏳ <b>Límite de mensajes alcanzado</b>\n\n"+
			"Usados %d de %d en la última hora.\n"+
			"Inténtalo de nuevo en %s.", current, ceiling, wait)
		if !premium {
			base += "\n\n💎 /subscribe — premium con un límite 50 veces mayor"
		}
	default:
		base = fmt.Sprintf("⏳ <b>Message limit reached</b>\n\n"+
			"You used %d of %d in the last hour.\n"+
			"Try again in %s.", current, ceiling, wait)
		if !premium {
			base += "\n\n💎 /subscribe — premium raises the limit 50x"
		}
	}
	return base
}

// MsgAllProvidersFailed is the apology when every model backend is down.
func MsgAllProvidersFailed(lang Lang) string {
	switch lang {
	case RU:
		return "😔 Все модели сейчас недоступны. Ваш вопрос не списан из лимита ответов — попробуйте через пару минут."
	case ES:
		return "😔 Todos los modelos están caídos ahora mismo. Inténtalo de nuevo en unos minutos."
	default:
		return "😔 All models are unavailable right now. Please try again in a couple of minutes."
	}
}

// MsgBanned is shown to banned users.
func MsgBanned(lang Lang) string {
	switch lang {
	case RU:
		return "🚫 Доступ к боту заблокирован."
	case ES:
		return "🚫 Tu acceso al bot está bloqueado."
	default:
		return "🚫 Your access to this bot has been blocked."
	}
}

// MsgSubscribeIntro heads the plan selection keyboard.
func MsgSubscribeIntro(lang Lang, monthlyStars, yearlyStars int) string {
	switch lang {
	case RU:
		return fmt.Sprintf("💎 <b>Премиум-подписка</b>\n\n"+
			"• Лимит 1000 сообщений в час\n"+
			"• Голосовые сообщения\n"+
			"• Анализ фотографий\n\n"+
			"Месяц — %d ⭐, год — %d ⭐", monthlyStars, yearlyStars)
	case ES:
		return fmt.Sprintf("💎 <b>Suscripción premium</b>\n\n"+
			"• Límite de 1000 mensajes por hora\n"+
			"• Mensajes de voz\n"+
			"• Análisis de fotos\n\n"+
			"Mensual — %d ⭐, anual — %d ⭐", monthlyStars, yearlyStars)
	default:
		return fmt.Sprintf("💎 <b>Premium subscription</b>\n\n"+
			"• 1000 messages per hour\n"+
			"• Voice messages\n"+
			"• Photo analysis\n\n"+
			"Monthly — %d ⭐, yearly — %d ⭐", monthlyStars, yearlyStars)
	}
}

// BtnMonthly labels the monthly plan button.
func BtnMonthly(lang Lang, stars int) string {
	switch lang {
	case RU:
		return fmt.Sprintf("Месяц — %d ⭐", stars)
	case ES:
		return fmt.Sprintf("Mensual — %d ⭐", stars)
	default:
		return fmt.Sprintf("Monthly — %d ⭐", stars)
	}
}

// BtnYearly labels the yearly plan button.
func BtnYearly(lang Lang, stars int) string {
	switch lang {
	case RU:
		return fmt.Sprintf("Год — %d ⭐", stars)
	case ES:
		return fmt.Sprintf("Anual — %d ⭐", stars)
	default:
		return fmt.Sprintf("Yearly — %d ⭐", stars)
	}
}

// MsgPaymentSuccess confirms an activated subscription.
func MsgPaymentSuccess(lang Lang, tierName string, expiresAt time.Time) string {
	date := expiresAt.Format("2006-01-02")
	switch lang {
	case RU:
		return fmt.Sprintf("✅ <b>Подписка активирована</b>\n\n"+
			"Тариф: %s\nДействует до: %s\n\nСпасибо за поддержку!", tierName, date)
	case ES:
		return fmt.Sprintf("✅ <b>Suscripción activada</b>\n\n"+
			"Plan: %s\nVálida hasta: %s\n\n¡Gracias por tu apoyo!", tierName, date)
	default:
		return fmt.Sprintf("✅ <b>Subscription activated</b>\n\n"+
			"Plan: %s\nValid until: %s\n\nThanks for your support!", tierName, date)
	}
}

// MsgStatus reports tier, usage and expiry.
func MsgStatus(lang Lang, tierName string, current, ceiling int, expiresAt *time.Time) string {
	expiry := ""
	if expiresAt != nil {
		expiry = expiresAt.Format("2006-01-02")
	}

	switch lang {
	case RU:
		msg := fmt.Sprintf("📊 <b>Ваш статус</b>\n\nТариф: %s\nСообщений за час: %d из %d", tierName, current, ceiling)
		if expiry != "" {
			msg += "\nПодписка до: " + expiry
		}
		return msg
	case ES:
		msg := fmt.Sprintf("📊 <b>Tu estado</b>\n\nPlan: %s\nMensajes esta hora: %d de %d", tierName, current, ceiling)
		if expiry != "" {
			msg += "\nSuscripción hasta: " + expiry
		}
		return msg
	default:
		msg := fmt.Sprintf("📊 <b>Your status</b>\n\nPlan: %s\nMessages this hour: %d of %d", tierName, current, ceiling)
		if expiry != "" {
			msg += "\nSubscribed until: " + expiry
		}
		return msg
	}
}

// MsgCleared confirms history wipe.
func MsgCleared(lang Lang) string {
	switch lang {
	case RU:
		return "🗑 История очищена. Начинаем с чистого листа."
	case ES:
		return "🗑 Historial borrado. Empezamos de cero."
	default:
		return "🗑 History cleared. Starting fresh."
	}
}

// MsgFeatureLocked upsells voice/vision to free users.
func MsgFeatureLocked(lang Lang) string {
	switch lang {
	case RU:
		return "🔒 <b>Премиум-функция</b>\n\nГолосовые сообщения и анализ фото доступны по подписке.\n\n💎 /subscribe"
	case ES:
		return "🔒 <b>Función premium</b>\n\nLos mensajes de voz y el análisis de fotos requieren suscripción.\n\n💎 /subscribe"
	default:
		return "🔒 <b>Premium feature</b>\n\nVoice messages and photo analysis need a subscription.\n\n💎 /subscribe"
	}
}

// MsgModelList shows selectable providers; the current one is marked.
func MsgModelList(lang Lang, providers []string, current string) string {
	var header string
	switch lang {
	case RU:
		header = "🧠 <b>Доступные модели</b>\n\n"
	case ES:
		header = "🧠 <b>Modelos disponibles</b>\n\n"
	default:
		header = "🧠 <b>Available models</b>\n\n"
	}

	body := ""
	for _, id := range providers {
		mark := "▫️"
		if id == current {
			mark = "✅"
		}
		body += fmt.Sprintf("%s %s\n", mark, id)
	}
	return header + body
}

// MsgModelSet confirms a model preference change.
func MsgModelSet(lang Lang, model string) string {
	switch lang {
	case RU:
		return fmt.Sprintf("✅ Модель переключена на <b>%s</b>.", model)
	case ES:
		return fmt.Sprintf("✅ Modelo cambiado a <b>%s</b>.", model)
	default:
		return fmt.Sprintf("✅ Model switched to <b>%s</b>.", model)
	}
}

// MsgUnknownCommand is the fallback for unrecognized commands.
func MsgUnknownCommand(lang Lang) string {
	switch lang {
	case RU:
		return "🤔 Неизвестная команда. /help покажет список команд."
	case ES:
		return "🤔 Comando desconocido. /help muestra la lista."
	default:
		return "🤔 Unknown command. /help lists what I can do."
	}
}

// MsgError is the generic failure apology.
func MsgError(lang Lang) string {
	switch lang {
	case RU:
		return "⚠️ Что-то пошло не так. Попробуйте ещё раз."
	case ES:
		return "⚠️ Algo salió mal. Inténtalo de nuevo."
	default:
		return "⚠️ Something went wrong. Please try again."
	}
}

func formatWait(lang Lang, d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	switch lang {
	case RU:
		return fmt.Sprintf("%d мин", minutes)
	case ES:
		return fmt.Sprintf("%d min", minutes)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}
