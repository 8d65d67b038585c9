package source

import (
	"fmt"
	"strings"

	"github.com/hetulpatel/valorfinder/internal/models"
)

// Language selects the language of source prompts and returned narratives.
type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
	LanguageES Language = "es"
)

// NormalizeLanguage maps arbitrary input to a supported language, defaulting to English.
func NormalizeLanguage(raw string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case LanguagePT:
		return LanguagePT
	case LanguageES:
		return LanguageES
	default:
		return LanguageEN
	}
}

const matchesSystemPrompt = "You are an expert sports data analyst specializing in football. You identify betting markets with positive expected value. Respond only with JSON."

const analysisSystemPrompt = "You are an expert sports data analyst specializing in football. Provide clear, well-structured match analysis."

const jsonShapeInstructions = `Return the data EXCLUSIVELY as a JSON array string, without markdown formatting or explanatory text. The JSON must follow this structure:
[
  {
    "homeTeam": "string",
    "awayTeam": "string",
    "league": "string",
    "matchTime": "string (ISO 8601 UTC)",
    "location": "string (Stadium, City)",
    "markets": [
      {
        "market": "string",
        "realProbability": "number (0-1)",
        "bookmakerOdds": "number",
        "bookmakerName": "string",
        "bookmakerUrl": "string (URL)",
        "confidenceScore": "integer (0-100)"
      }
    ]
  }
]`

func fetchMatchesPrompt(lang Language, date string) string {
	var task string
	switch lang {
	case LanguagePT:
		task = fmt.Sprintf(`Aja como um analista de dados esportivos especialista em futebol.
Sua tarefa e fornecer uma lista de ate 15 jogos de futebol REAIS que acontecerao no dia %s. Priorize jogos que ainda nao comecaram e de ligas conhecidas.

Para cada jogo encontrado:
1. Forneca informacoes precisas sobre os times, liga, horario (ISO 8601 UTC) e local (estadio, cidade).
2. Analise o jogo e identifique ate 3 mercados de aposta diferentes com valor (EV+), incluindo mercados de gols no primeiro tempo (HT).
3. Para CADA mercado com valor, forneca: 'market', 'realProbability' (0-1), 'bookmakerOdds', 'bookmakerName', 'bookmakerUrl' e 'confidenceScore' (0-100).

Se nao encontrar nenhum mercado com valor para um jogo, nao inclua o jogo.`, date)
	case LanguageES:
		task = fmt.Sprintf(`Actua como un analista de datos deportivos experto en futbol.
Tu tarea es proporcionar una lista de hasta 15 partidos de futbol REALES que ocurriran el %s. Prioriza partidos que aun no han comenzado y de ligas conocidas.

Para cada partido encontrado:
1. Proporciona informacion precisa sobre los equipos, liga, horario (ISO 8601 UTC) y ubicacion (estadio, ciudad).
2. Analiza el partido e identifica hasta 3 mercados de apuestas diferentes con valor (EV+), incluyendo mercados de goles en la primera mitad (HT).
3. Para CADA mercado con valor, proporciona: 'market', 'realProbability' (0-1), 'bookmakerOdds', 'bookmakerName', 'bookmakerUrl' y 'confidenceScore' (0-100).

Si no encuentras ningun mercado con valor para un partido, no incluyas el partido.`, date)
	default:
		task = fmt.Sprintf(`Act as an expert sports data analyst specializing in football.
Your task is to provide a list of up to 15 REAL football matches happening on %s. Prioritize matches that have not yet started and are from well-known leagues.

For each match found:
1. Provide accurate information about the teams, league, time (ISO 8601 UTC), and location (stadium, city).
2. Analyze the match and identify up to 3 different betting markets with value (EV+), including first-half (HT) goal markets.
3. For EACH valuable market, provide: 'market', 'realProbability' (0-1), 'bookmakerOdds', 'bookmakerName', 'bookmakerUrl', and 'confidenceScore' (0-100).

The goal is to find multiple EV+ markets for the same match if they exist. If you find none, do not include the match.`, date)
	}
	return task + "\n\n" + jsonShapeInstructions
}

func analysisPrompt(lang Language, match models.Match) string {
	switch lang {
	case LanguagePT:
		return fmt.Sprintf(`Forneca uma analise detalhada para a partida de futebol entre %s e %s na %s.

Foco da analise:
- Forma recente de ambas as equipes (ultimos 5 jogos).
- Estatisticas chave de ataque e defesa (gols marcados/sofridos, xG).
- Jogadores chave (artilheiros, desfalques importantes).
- Historico de confrontos diretos (H2H).

Responda em portugues, em texto formatado, sem JSON.`, match.HomeTeam, match.AwayTeam, match.League)
	case LanguageES:
		return fmt.Sprintf(`Proporciona un analisis detallado para el partido de futbol entre %s y %s en la %s.

Enfoque del analisis:
- Forma reciente de ambos equipos (ultimos 5 partidos).
- Estadisticas clave de ataque y defensa (goles marcados/recibidos, xG).
- Jugadores clave (goleadores, bajas importantes).
- Historial de enfrentamientos directos (H2H).

Responde en espanol, en texto formateado, sin JSON.`, match.HomeTeam, match.AwayTeam, match.League)
	default:
		return fmt.Sprintf(`Provide a detailed analysis for the football match between %s and %s in the %s.

Analysis focus:
- Recent form of both teams (last 5 games).
- Key attacking and defensive statistics (goals scored/conceded, xG).
- Key players (top scorers, important absences).
- Head-to-head history (H2H).

Answer in English, as formatted text, no JSON.`, match.HomeTeam, match.AwayTeam, match.League)
	}
}
