package services

// Scripted agent replies. The bot speaks Spanish; reply selection is kept in
// pure functions so the conversational policy is testable on its own.

const (
	replyAskName  = "Hola, encantado de conocerte. ¿Cuál es tu nombre?"
	replyAskAge   = "¿Qué edad tienes?"
	replyAskDMAge = "Y ¿Cuándo te diagnosticaron la diabetes?"
	replyAskType  = "Vaya... ¿Qué tipo de diabetes tienes?"
	replyAskTreat = "Entonces, ¿Qué tratamiento utilizas para controlar tu glucosa en sangre?"
	replyThanks   = "¡Muchas gracias por ayudarme a conocerte mejor! Si tienes cualquier duda acerca de mi ahora es tu turno."

	replyGlucoseGood      = "Muy bien, es importante que tengas buen nivel de glucosa en sangre."
	replyGlucoseBad       = "Bueno, es difícil mantenerse siempre dentro de rango."
	replyGlucoseFollowUp  = "¿Has llevado a cabo alguna acción para remediarlo?"
	replyInsulinBasal     = "Muy bien. Si notas que tu nivel de glucosa en sangre aumenta o disminuye sin causa aparente deberías hablar con tu endocrino para modificar esta dosis."
	replyInsulinBolus     = "Genial. Recuerda volver a comprobar tu nivel de glucosa en una hora y media para comprobar que la dosis ha sido adecuada."
	replyFoodEnjoy        = "¡Qué bueno! Si tuviera la capacidad de comer me encantaría probarlo."
	replyFoodWatchGlucose = "Intenta tomar las medidas correspondientes para que esta comida no afecte a tu nivel de glucosa."
	replyExerciseAdvice   = "Recuerda que el ejercicio puede afectar a tu nivel de glucosa en sangre, así que es posible que tengas que modificar tu dosis de insulina."
	replyMatch            = "¿Qué tal ha ido? ¿Has ganado?"
	replyStress           = "Vaya, y ¿Cómo lo llevas?"
	ReplyReadError        = "Lo siento, ahora mismo no puedo consultar tus datos. Inténtalo de nuevo en un momento."
	ReplyWriteError       = "Lo siento, no he podido guardar tus datos. Inténtalo de nuevo en un momento."
	ReplyUnknownIntent    = "Perdona, no te he entendido. ¿Puedes decirlo de otra forma?"
)

// Glucose range considered in target. The state word "bien" also counts as
// in range even without a numeric value.
const (
	glucoseRangeLow  = 80.0
	glucoseRangeHigh = 150.0
)

func greetKnownUser(name string) string {
	return "Hola de nuevo " + name + ", ¿Qué tal estás?"
}

func greetNewUserReplies(name string) []string {
	return []string{
		"Un placer conocerte " + name + ". Yo soy DM bot, y estaré aquí siempre que quieras compañía. Me han diseñado para mantener conversaciones de distintos temas, pero con un conocimiento especial acerca de la diabetes. Quiero aprovechar este conocimiento para ayudarte en todo lo que sea posible, pero antes me gustaría saber un poco más de ti.",
		replyAskAge,
	}
}

// glucoseReplies selects the reply list for a glucose report. hasValue tells
// whether the numeric slot was present; an absent value with no "bien" state
// counts as out of range, keeping the follow-up question in play.
func glucoseReplies(value float64, hasValue bool, state string) []string {
	inRange := (hasValue && value > glucoseRangeLow && value < glucoseRangeHigh) || state == "bien"
	if inRange {
		return []string{replyGlucoseGood}
	}
	return []string{replyGlucoseBad, replyGlucoseFollowUp}
}

// insulinReplies distinguishes basal ("lenta") from bolus insulin.
func insulinReplies(insulinType string) []string {
	if insulinType == "lenta" {
		return []string{replyInsulinBasal}
	}
	return []string{replyInsulinBolus}
}

func foodReplies() []string {
	return []string{replyFoodEnjoy, replyFoodWatchGlucose}
}

func exerciseReplies(sport string) []string {
	return []string{
		"¿" + sport + "? Me parece una forma genial de hacer ejercicio.",
		replyExerciseAdvice,
	}
}

func matchReplies() []string {
	return []string{replyMatch}
}

func stressReplies() []string {
	return []string{replyStress}
}
