package converter

const alibabaFixture = `{
  "result": {
    "departing": [{
      "uniqueKey": "ab-1",
      "flightId": 123,
      "proposalId": "pr-9",
      "origin": "THR",
      "destination": "MHD",
      "leaveDateTime": "2025-12-15T14:30:00",
      "arrivalDateTime": "2025-12-15T15:45:00",
      "airlineCode": "IR",
      "flightNumber": "0100",
      "class": "Y",
      "classType": "E",
      "classTypeName": "اکونومی",
      "isCharter": false,
      "isRefundable": true,
      "priceAdult": 50000000,
      "priceChild": 40000000,
      "priceInfant": 5000000,
      "commission": 120000,
      "seat": 10,
      "aircraft": "Airbus A310",
      "terminal": "4",
      "maxAllowedBaggage": 20,
      "crcn": {"before 3h": "70%", "after 3h": "120%"},
      "description": "refund subject to airline rules",
      "promoted": 1,
      "stars": 4.5
    }]
  }
}`

const mrbilitFixture = `{
  "Flights": [{
    "Id": "mb-1",
    "Segments": [{
      "Legs": [{
        "DepartureTime": "2025-12-15T14:30:00",
        "ArrivalTime": "2025-12-15T15:45:00",
        "FlightNumber": "IR100",
        "OriginCode": "THR",
        "DestinationCode": "MHD",
        "Airline": {"EnglishTitle": "Iran Air", "PersianTitle": "ایران ایر"},
        "AirCraft": {"EnglishTitle": "Airbus A310", "Iatacode": "310"},
        "Origin": "تهران",
        "Destination": "مشهد",
        "DepartureWeekDay": "دوشنبه",
        "DepartureDateString": "1404/09/24",
        "JourneyTime": "01:15:00",
        "Stops": 0
      }]
    }],
    "Prices": [{
      "BookingClass": "Y",
      "CabinClass": "Economy",
      "IsCharter": false,
      "Capacity": 10,
      "Baggage": "20",
      "ProposalId": "mb-p1",
      "PassengerFares": [
        {"PaxType": "ADL", "TotalFare": 50000000},
        {"PaxType": "CHD", "TotalFare": 40000000}
      ],
      "CancellationTernEntities": [
        {"FromTime": "72h", "ToTime": "3h", "Percent": 30},
        {"FromTime": "3h", "Percent": 80}
      ],
      "FlightSpecialOffers": [{"Title": "free meal"}]
    }, {
      "BookingClass": "C",
      "CabinClass": "Business",
      "Capacity": 2,
      "PassengerFares": [{"PaxType": "Adult", "TotalPrice": 80000000}]
    }]
  }]
}`

const safarMarketFixture = `{
  "result": {
    "flights": [{
      "flightId": "sm-1",
      "flightClass": "ECONOMY",
      "capacity": 10,
      "promote": true,
      "tags": ["cheapest"],
      "leave": {
        "airlineCode": "IR",
        "flightNo": "100",
        "airlineName": "Iran Air",
        "departureTime": "2025-12-15 14:30",
        "arrivalTime": "2025-12-15 15:45",
        "duration": 75,
        "sellType": "SYSTEM",
        "legs": [{
          "departureTime": "2025-12-15 14:30",
          "departureAirportCode": "THR",
          "arrivalAirportCode": "MHD",
          "departureCityName": "Tehran",
          "arrivalCityName": "Mashhad",
          "flightType": "ECONOMY"
        }],
        "priceTypes": {"adultPrice": 50000000, "childPrice": 40000000},
        "cancellationPolicies": [
          {"policy": "UNTIL_3H", "description": "30% penalty until 3 hours before departure"},
          {"description": "no refund after departure"}
        ]
      },
      "providers": [
        {"id": "p1", "title": "seller one", "price": 52000000, "capacity": 6},
        {"id": "p2", "title": "seller two", "titleEn": "Seller Two", "price": 50000000, "oldPrice": 51000000, "capacity": 4,
         "url": "https://example.org/book",
         "outBoundBaggages": [{"passengerType": "ADULT", "weightKg": "20", "pieces": 1}, {"passengerType": "INFANT", "weightKg": 0}]}
      ]
    }]
  }
}`

const safar366Fixture = `{
  "Success": true,
  "Items": [{
    "AirItinerary": [{"SessionId": "b0e0cce3"}],
    "AirItineraryPricingInfo": {
      "PTC_FareBreakdowns": [
        {"PassengerTypeQuantity": {"Code": "ADT"}, "PassengerFare": {"BaseFare": 48000000, "TotalFare": 50000000, "Taxes": 2000000}},
        {"PassengerTypeQuantity": {"Code": "INF"}, "PassengerFare": {"BaseFare": 5000000, "TotalFare": 5000000}}
      ]
    },
    "OriginDestinationInformation": {
      "OriginDestinationOption": [{
        "OriginLocation": "THR",
        "DestinationLocation": "MHD",
        "TPA_Extensions": {"IsCharter": false, "IsForeign": false, "IsNationalIdOptional": 1, "Stop": 0},
        "FlightSegment": [{
          "DepartureDateTime": "2025-12-15T14:30:00",
          "ArrivalDateTime": "2025-12-15T15:45:00",
          "FlightNumber": 100,
          "ResBookDesigCode": "Y",
          "CabinClassCode": "Economy",
          "SeatsRemaining": "10",
          "DepartureAirport": {"LocationCode": "THR", "AirportName": "Mehrabad Intl"},
          "ArrivalAirport": {"LocationCode": "MHD", "AirportName": "Shahid Hashemi Nejad"},
          "MarketingAirline": {"Code": "IR", "CompanyShortName": "Iran Air"},
          "MarketingCabin": {"Name": "Economy", "BaggageAllowance": {"UnitOfMeasureQuantity": 20}},
          "TPA_Extensions": {"AirlineNameFa": "ایران ایر", "FlightType": "System", "UniqueId": "u-1", "CabinBaggage": "7KG"}
        }]
      }]
    }
  }]
}`

const flyTodayFixture = `{
  "pricedItineraries": [{
    "fareSourceCode": "fs-1",
    "validatingAirlineCode": "IR",
    "originDestinationOptions": [{
      "flightSegments": [{
        "departureDateTime": "2025-12-15T14:30:00",
        "arrivalDateTime": "2025-12-15T15:45:00",
        "flightNumber": "100",
        "marketingAirlineCode": "IR",
        "departureAirportLocationCode": "THR",
        "arrivalAirportLocationCode": "MHD",
        "resBookDesigCode": "Y",
        "cabinClassCode": "Y",
        "seatsRemaining": 10
      }]
    }],
    "airItineraryPricingInfo": {"itinTotalFare": {"totalFare": 50000000}}
  }]
}`

const patehFixture = `{
  "data": [{
    "depart": [{
      "origin": "THR",
      "destination": "MHD",
      "flight_datetime": "2025-12-15 14:30:00",
      "arrival_datetime": "2025-12-15 15:45:00",
      "flight_no": "0100",
      "available_seat_quantity": 10,
      "airline_info": {"code": "IR", "name_fa": "ایران ایر", "name_en": "Iran Air"}
    }],
    "finance": {"adult": {"fare": 50000000}, "child": {"fare": 40000000}, "infant": {"fare": 5000000}}
  }]
}`
