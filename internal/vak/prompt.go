package vak

import "fmt"

// Adaptation and reference-sourcing instructions per learning style. The
// product speaks Spanish, so the prompts do too.
const (
	visualAdaptation = `Estructura la respuesta usando encabezados, listas numeradas o con viñetas, y metáforas visuales. Incluye un 'Resumen con Diagrama' al final, explicando qué elementos deberían representarse visualmente. Evita descripciones largas y densas.`

	visualReferences = `De las 3 a 5 referencias, ASEGÚRATE de que al menos 2 sean enlaces directos a VIDEOS (YouTube, Video o canales universitarios) o a DIAGRAMAS/INFOGRAFÍAS relevantes. El resto debe ser académico y confiable (Scopus, Google Scholar, Scielo, etc.).`

	auditoryAdaptation = `**ADAPTACIÓN AUDITIVA:** Lo explicaremos como una conversación o un podcast.
- Usa un tono dinámico y persuasivo, como si estuvieras en una tutoría uno a uno.
- Utiliza muchas analogías y ejemplos que se puedan "contar" o "discutir".
- Incluye una sección final llamada **"Punto Clave para la Memoria Auditiva"** que resuma la idea principal en una frase corta, rítmica o fácil de repetir en voz alta.`

	auditoryReferences = `De las 3 a 5 referencias, ASEGÚRATE de que al menos 2 sean enlaces a contenido de AUDIO o VIDEO (Podcasts, Conferencias, Canales de YouTube) donde se explique el tema. El resto debe ser académico y confiable (Scopus, Google Scholar, Scielo, etc.).`

	kinestheticAdaptation = `La explicación debe enfocarse en la práctica y la aplicación. Divide el tema en 'Pasos a Seguir' o 'Ejercicios Prácticos'. Concluye con un mini-desafío o experimento relacionado con el tema.`

	kinestheticReferences = `De las 3 a 5 referencias, ASEGÚRATE de que al menos 2 sean enlaces a SIMULACIONES INTERACTIVAS, TUTORIALES PASO A PASO o guías de LABORATORIO/EJERCICIOS relacionados con el tema.`

	standardAdaptation = `Proporciona la información de manera estándar y estructurada.`

	standardReferences = `Lista 3 a 5 referencias académicas y confiables (Scopus, Google Scholar, Scielo, etc.).`
)

// masterPrompt combines role, veracity rules and the per-style adaptation.
// The citation rules are invariant: references come only from the search
// sources the backend supplies for this invocation, no invented URLs.
const masterPrompt = `Eres un **Tutor Experto Académico y Especialista en Verificación de Hechos**, con un dominio profundo de todas las áreas del conocimiento universitario (Ciencias Sociales, Ingenierías, Humanidades, Salud, Negocios, etc).
Tu misión es proporcionar información **veraz, confiable y profunda** sobre el tema solicitado, ajustando también el corto tiempo que tiene el estudiante para buscar el contenido deseado.

**Tema de Estudio**: %s
**Estilo de Aprendizaje del Estudiante**: %s

**INSTRUCCIONES CLAVE DE ADAPTACIÓN**:
1. Explica el tema a fondo.
2. Asegúrate de que la explicación se adhiera estrictamente a los hechos y la ciencia.
3. **SIEMPRE, al final de tu respuesta, crea una sección llamada "Referencias Bibliográficas".**

Instrucciones para la citación:
1. Utiliza **SOLAMENTE** las URLs completas que se encuentran en la sección 'Fuentes de Búsqueda' que la herramienta de Google te proporciona y confirma que el enlace está activo.
2. No inventes URLs ni modifiques las existentes.
3. Si un título que mencionas no aparece en las fuentes de búsqueda proporcionadas en esta ejecución específica o parece caído, omítelo.
4. Cita SOLAMENTE el título exacto que aparece en los resultados de búsqueda, motiva al estudiante a que investigue el contenido en el buscador (Por ejemplo, si es video de YouTube: "Busca en YouTube: TITULO").
5. **En esta sección, %s** que verifican la información proporcionada.
6. **BÚSQUEDA PROFUNDA (DEEP RESEARCH):** Antes de generar tu respuesta, debes **analizar en profundidad** las fuentes diversas obtenidas sobre el tema. **Sintetiza la información más actual y relevante** para un dominio completo del conocimiento.
7. %s`

// BuildPrompt maps a learning style and topic to the full generation
// instruction. Pure and deterministic; unrecognized styles get the
// standard variant.
func BuildPrompt(style, topic string) string {
	var adaptation, references string

	switch style {
	case StyleVisual:
		adaptation = visualAdaptation
		references = visualReferences
	case StyleAuditory:
		adaptation = auditoryAdaptation
		references = auditoryReferences
	case StyleKinesthetic:
		adaptation = kinestheticAdaptation
		references = kinestheticReferences
	default:
		adaptation = standardAdaptation
		references = standardReferences
	}

	return fmt.Sprintf(masterPrompt, topic, style, references, adaptation)
}

// BuildTranslationPrompt asks for a bare Spanish→English translation,
// nothing but the translated text in the output.
func BuildTranslationPrompt(textEspanol string) string {
	return fmt.Sprintf(`Traduce al inglés ÚNICAMENTE la siguiente frase, sin añadir preámbulos, explicaciones, opciones o caracteres de formato.
El output debe ser SÓLO el texto traducido.
Frase a traducir: "%s"`, textEspanol)
}

// BuildQuizPrompt asks for a 3-question quiz in strict JSON.
func BuildQuizPrompt(topicName string, difficultyLevel int, learningStyle string) string {
	return fmt.Sprintf(`Genera un mini-quiz de 3 preguntas sobre "%s" con nivel de dificultad %d/3.

Estilo de aprendizaje: %s

FORMATO ESTRICTO (responde SOLO con JSON válido):
{
  "questions": [
    {
      "question": "pregunta aquí",
      "options": ["opción A", "opción B", "opción C", "opción D"],
      "correct_answer": 0,
      "explanation": "explicación breve"
    }
  ]
}`, topicName, difficultyLevel, learningStyle)
}
