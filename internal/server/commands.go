// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

// Static reply texts for the bot commands. The bot's audience is
// francophone, so the texts are French like the channel it watches.

const welcomeMessage = `🎭 Bienvenue dans le monde de Joker !

🎯 Commandes disponibles :
/start - Accueil
/help - Aide détaillée
/about - À propos du bot
/dev - Informations développeur

🔮 Fonctionnalités spéciales :
- Prédictions de cartes automatiques
- Analyse des combinaisons
- Gestion des canaux et groupes
`

const helpMessage = `🎯 Guide d'utilisation du Bot Joker :

📝 Commandes de base :
/start - Message d'accueil
/help - Afficher cette aide
/about - Informations sur le bot
/dev - Contact développeur

🔮 Fonctionnalités avancées :
- Le bot analyse automatiquement les messages contenant des combinaisons de cartes
- Il fait des prédictions basées sur les patterns détectés
- Gestion intelligente des messages édités
- Support des canaux et groupes

🎴 Format des cartes :
Le bot reconnaît les symboles : ♠️ ♥️ ♦️ ♣️

📊 Le bot peut traiter les messages avec format #nXXX pour identifier les jeux.
`

const aboutMessage = `🎭 Bot Joker - Prédicteur de Cartes

🤖 Version : 2.0
🔮 Spécialisé dans l'analyse de combinaisons de cartes

✨ Fonctionnalités :
- Prédictions automatiques
- Analyse de patterns
- Support multi-canaux
- Interface intuitive

🌟 Créé pour améliorer votre expérience de jeu !
`

const devMessage = `👨‍💻 Informations Développeur :

📧 Contact :
Pour le support technique ou les suggestions d'amélioration,
contactez l'administrateur du bot.

🚀 Le bot est open source et peut être déployé facilement !
`

// commandReplies maps a command to its static reply.
var commandReplies = map[string]string{
	"/start": welcomeMessage,
	"/help":  helpMessage,
	"/about": aboutMessage,
	"/dev":   devMessage,
}
