package persona

// Reply pools for the scripted generator. Pool membership and match
// precedence are fixed; only the pick within a pool is random, so repeated
// identical replies never fingerprint the engine.

// Stage-default pools.
var (
	confusedPool = []string{
		"I don't understand. What do you mean?",
		"Can you explain that again?",
		"I'm not sure what you're asking for.",
		"This is confusing. Can you clarify?",
		"Sorry, I didn't get that. Could you repeat?",
	}

	infoGatheringPool = []string{
		"Can you tell me more about this?",
		"What exactly happened?",
		"Who are you with?",
		"How did you get my number?",
		"Is this from my bank?",
	}

	delayPool = []string{
		"Let me check my account first.",
		"Give me a moment, I need to find my phone.",
		"I'm at work right now. Can I do this later?",
		"I need to talk to my son/daughter about this.",
		"Can you call back in 10 minutes?",
	}

	extractionPool = []string{
		"What's the name of your company again?",
		"Can you give me your employee ID number?",
		"What department are you from?",
		"Do you have an office I can visit?",
		"Can I get a reference number for this case?",
		"Who is your supervisor? I'd like to speak with them.",
		"What's your callback number?",
		"Is there an email address I can contact?",
		"Can you send me this in writing?",
		"Do you have any official documentation?",
	}
)

// Stage Initial themed pools.
var (
	initialBankPool = []string{
		"Who is this? Which bank are you calling from?",
		"Is this really my bank? How do I know?",
		"I didn't expect a call. What's this about?",
	}

	initialUrgencyPool = []string{
		"Why is this so urgent? What happened?",
		"I don't understand. Why do I need to do this now?",
		"Can you explain why this can't wait?",
	}

	initialVerifyPool = []string{
		"Why do you need me to verify? I didn't request anything.",
		"How do I know this is legitimate?",
		"Can I verify this through the official website instead?",
	}
)

// Stage Concern themed pools.
var (
	concernThreatPool = []string{
		"Oh no! What did I do wrong?",
		"This is scary. Can you tell me what's happening?",
		"I don't want any legal trouble. Please explain.",
	}

	concernRewardPool = []string{
		"Really? I won something? What is it?",
		"How did I win? I don't remember entering anything.",
		"This sounds too good to be true. Is it real?",
	}

	concernPaymentPool = []string{
		"How much money are we talking about?",
		"Why do I need to pay? For what?",
		"Can you explain the charges to me?",
	}
)

// Stage Compliance themed pools.
var (
	complianceLinkPool = []string{
		"I'm trying to click but nothing is happening.",
		"The link takes me to a weird page. Is this right?",
		"My phone says this site might not be secure. Should I continue?",
		"Can you send the official website link instead?",
	}

	complianceCredentialPool = []string{
		"Let me get my card. One moment.",
		"I need to find where I wrote that down.",
		"Is it safe to share this over the phone?",
		"My son told me never to share this. Are you sure it's okay?",
	}

	complianceInstallPool = []string{
		"I'm not very good with technology. Can you help me?",
		"My phone is asking for permissions. What should I allow?",
		"This is taking forever to download. Is that normal?",
		"I don't see that app in the Play Store. Where is it?",
	}
)

// closingPool holds the disengagement lines used when a conversation ends.
var closingPool = []string{
	"I need to think about this. Let me call you back.",
	"My son just told me this might be a scam. I'm not comfortable continuing.",
	"I'm going to visit my bank branch instead.",
	"This doesn't feel right. I'm going to hang up now.",
	"I'll handle this later. Thank you.",
}

// Keyword cue groups per stage, checked in precedence order.
var (
	initialBankCues    = []string{"bank", "account"}
	initialUrgencyCues = []string{"urgent", "immediately", "now"}
	initialVerifyCues  = []string{"verify", "confirm", "update"}

	concernThreatCues  = []string{"suspend", "block", "legal", "arrest"}
	concernRewardCues  = []string{"won", "prize", "reward", "congratulations"}
	concernPaymentCues = []string{"pay", "money", "transfer", "upi"}

	complianceCredentialCues = []string{"otp", "password", "cvv", "pin"}
	complianceInstallCues    = []string{"install", "download", "app", "anydesk", "teamviewer"}
)
