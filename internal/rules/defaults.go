package rules

// DefaultGreetings are matched as substrings of the case-folded query, so
// short phrases also fire inside longer words ("hi" in "which").
var DefaultGreetings = []string{
	"hello",
	"hi",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"greetings",
	"namaste",
}

// DefaultTable is checked in order; keep more specific triggers first.
var DefaultTable = []Entry{
	{Trigger: "admission process", Answer: "Admissions open in May. Apply online through the college portal, upload your mark sheets, and attend the counselling session on the date shown in your application status."},
	{Trigger: "tuition fee", Answer: "The tuition fee is Rs. 85,000 per year for B.Tech programmes and Rs. 60,000 per year for B.Sc programmes, payable in two semester installments."},
	{Trigger: "courses offered", Answer: "The college offers B.Tech (CSE, ECE, ME, CE), B.Sc (Physics, Chemistry, Mathematics), BBA and MBA programmes."},
	{Trigger: "library timing", Answer: "The central library is open from 8:00 AM to 8:00 PM on weekdays and from 9:00 AM to 1:00 PM on Saturdays."},
	{Trigger: "placement", Answer: "The training and placement cell runs recruitment drives from August to March. Contact placements@college.edu for the current schedule."},
	{Trigger: "principal", Answer: "The principal's office is in the administrative block, first floor. Appointments can be booked at principal@college.edu."},
	{Trigger: "bus route", Answer: "College buses run on 12 routes across the city. Route maps are displayed at the transport office near the main gate."},
	{Trigger: "canteen", Answer: "The canteen is open from 8:00 AM to 6:00 PM and serves breakfast, lunch and snacks."},
}

// DefaultRules are checked in order; the first rule whose triggers all occur
// in the query wins, so combined triggers precede single ones.
var DefaultRules = []Rule{
	{All: []string{"email", "hostel"}, Answer: "You can email the hostel office at hostel@college.edu."},
	{All: []string{"fee", "hostel"}, Answer: "The hostel fee is Rs. 60,000 per year, including mess charges."},
	{All: []string{"contact", "hostel"}, Answer: "You can contact the hostel warden at +91-80-4000-1234."},
	{All: []string{"phone", "hostel"}, Answer: "You can contact the hostel warden at +91-80-4000-1234."},
	{All: []string{"email", "admission"}, Answer: "You can email the admissions office at admissions@college.edu."},
	{All: []string{"fee", "exam"}, Answer: "The examination fee is Rs. 1,500 per semester, payable before the hall ticket is issued."},
	{All: []string{"email"}, Answer: "You can email the college office at info@college.edu."},
	{All: []string{"contact"}, Answer: "You can contact the college office at +91-80-4000-1000 between 9:00 AM and 5:00 PM."},
	{All: []string{"phone number"}, Answer: "You can contact the college office at +91-80-4000-1000 between 9:00 AM and 5:00 PM."},
}
